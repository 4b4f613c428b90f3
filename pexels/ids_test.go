package pexels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractCollectionID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"with trailing slash", "https://www.pexels.com/collections/wallpapers-vmnecek/", "vmnecek", true},
		{"bare domain", "https://pexels.com/collections/my-nice-set-xbncfpg", "xbncfpg", true},
		{"uppercase host", "https://WWW.PEXELS.COM/collections/a-B2c/", "B2c", true},
		{"other host", "https://example.com/not-a-collection", "", false},
		{"lookalike host", "https://www.pexels.com.evil.io/collections/a-b/", "", false},
		{"no hyphen", "https://www.pexels.com/collections/invalid", "", false},
		{"trailing hyphen", "https://www.pexels.com/collections/invalid-/", "", false},
		{"not a collection", "https://www.pexels.com/photo/tree-123/", "", false},
		{"localized path", "https://www.pexels.com/nl-nl/collections/wallpapers-vmnecek/", "", false},
		{"non alphanumeric id", "https://www.pexels.com/collections/a-b_c/", "", false},
		{"not a url", "wallpapers-vmnecek", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCollectionID(tt.url)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPhotoID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"page with slug", "https://www.pexels.com/photo/green-trees-near-lake-1287145/", "1287145", true},
		{"page without slug", "https://www.pexels.com/photo/1287145", "1287145", true},
		{"image path", "https://images.pexels.com/photos/2014422/pexels-photo-2014422.jpeg", "2014422", true},
		{"image path end", "https://images.pexels.com/photos/2014422", "2014422", true},
		{"case insensitive", "https://www.pexels.com/PHOTO/tree-42/", "42", true},
		{"no id", "https://example.com/image.jpg", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPhotoID(tt.text)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPageURL(t *testing.T) {
	require.Equal(t, "https://www.pexels.com/photo/123/", PageURL("123"))
}
