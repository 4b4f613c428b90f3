package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/store"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultImagesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pexels_photo_urls.txt")
	content := "  https://images.pexels.com/photos/2014422/pexels-photo-2014422.jpeg  \n" +
		"\n" +
		"https://www.pexels.com/photo/sunset-over-lake-5/\n" +
		"\t\n" +
		"https://cdn.example.com/c.jpg"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	status := NewStatusBoard()
	status.ShowStatus("previous", true, StatusOptions{Persistent: true})
	l := NewLocalManager(FileSource{Path: path}, status, i18n.English())

	photos := l.LoadDefaultImages(context.Background())
	require.Equal(t, []store.PhotoEntry{
		{
			ImageURL: "https://images.pexels.com/photos/2014422/pexels-photo-2014422.jpeg",
			PageURL:  "https://www.pexels.com/photo/2014422/",
			ID:       "2014422",
		},
		{
			ImageURL: "https://www.pexels.com/photo/sunset-over-lake-5/",
			PageURL:  "https://www.pexels.com/photo/5/",
			ID:       "5",
		},
		{ImageURL: "https://cdn.example.com/c.jpg"},
	}, photos)
	require.False(t, status.Current().Visible)
}

func TestLoadDefaultImagesHTTPNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	status := NewStatusBoard()
	tr := i18n.English()
	l := NewLocalManager(HTTPSource{URL: server.URL + "/pexels_photo_urls.txt"}, status, tr)

	require.Empty(t, l.LoadDefaultImages(context.Background()))
	current := status.Current()
	require.True(t, current.Visible)
	require.True(t, current.IsError)
	require.Equal(t, tr.Get("statusLocalFileNotFound")+" (HTTP 404)", current.Message)
}

func TestLoadDefaultImagesHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("https://a.example/1.jpg\nhttps://a.example/2.jpg\n"))
	}))
	defer server.Close()

	l := NewLocalManager(HTTPSource{URL: server.URL}, NewStatusBoard(), i18n.English())
	require.Len(t, l.LoadDefaultImages(context.Background()), 2)
}

func TestLoadDefaultImagesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n\n"), 0o644))

	status := NewStatusBoard()
	tr := i18n.English()
	l := NewLocalManager(FileSource{Path: path}, status, tr)

	require.Empty(t, l.LoadDefaultImages(context.Background()))
	require.Equal(t, tr.Get("statusLocalFileNotFound"), status.Current().Message)
	require.True(t, status.Current().IsError)
}

func TestLoadDefaultImagesMissingFile(t *testing.T) {
	status := NewStatusBoard()
	tr := i18n.English()
	l := NewLocalManager(FileSource{Path: filepath.Join(t.TempDir(), "missing.txt")}, status, tr)

	require.Empty(t, l.LoadDefaultImages(context.Background()))
	require.Equal(t, tr.Get("statusLocalFileNotFound"), status.Current().Message)
}
