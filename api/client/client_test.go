package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aouyang1/pexelwallpaper/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/settings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.UpdateSettingsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "secret", req.APIKey)

		json.NewEncoder(w).Encode(models.SettingsResponse{
			APIKeyConfigured: true,
			CollectionID:     "abc123",
			CollectionURL:    req.CollectionURL,
			Mode:             "remote",
		})
	}))
	defer server.Close()

	fc := NewFrameClient(server.URL + "/")
	resp, err := fc.Configure(context.Background(), "secret", "https://www.pexels.com/collections/nature-abc123/")
	require.NoError(t, err)
	require.Equal(t, "abc123", resp.CollectionID)
	require.Equal(t, "remote", resp.Mode)
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid Collection URL."})
	}))
	defer server.Close()

	_, err := NewFrameClient(server.URL).Configure(context.Background(), "k", "https://example.com")
	require.EqualError(t, err, "server error: Invalid Collection URL.")
}

func TestNextConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slideshow/next", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("busy"))
	}))
	defer server.Close()

	_, err := NewFrameClient(server.URL).Next(context.Background())
	require.EqualError(t, err, "server returned status 409: busy")
}

func TestWallpaperAndPause(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wallpaper":
			json.NewEncoder(w).Encode(models.WallpaperResponse{Src: "https://x/1.jpg", Index: 1, Total: 3, Track: "default"})
		case "/slideshow/pause":
			json.NewEncoder(w).Encode(models.MessageResponse{Message: "Slideshow paused"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fc := NewFrameClient(server.URL)
	wallpaper, err := fc.Wallpaper(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, wallpaper.Total)
	require.Equal(t, "default", wallpaper.Track)

	msg, err := fc.Pause(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Slideshow paused", msg)
}
