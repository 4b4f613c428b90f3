package pexels

import (
	"strings"

	"github.com/aouyang1/pexelwallpaper/store"
)

// Entry is either a RawURLEntry or an APIPhotoEntry
type Entry interface {
	isEntry()
}

// RawURLEntry is a bare image url, one line of the default url list
type RawURLEntry string

// APIPhotoEntry is a photo as described by the api
type APIPhotoEntry struct {
	ImageURL        string
	PageURL         string
	PhotographerURL string
	ID              string
}

func (RawURLEntry) isEntry()   {}
func (APIPhotoEntry) isEntry() {}

// Normalize resolves an entry to a PhotoEntry. It reports false when the entry
// has no usable image url.
func Normalize(e Entry) (store.PhotoEntry, bool) {
	switch entry := e.(type) {
	case RawURLEntry:
		imageURL := strings.TrimSpace(string(entry))
		if imageURL == "" {
			return store.PhotoEntry{}, false
		}
		p := store.PhotoEntry{ImageURL: imageURL}
		if id, ok := ExtractPhotoID(imageURL); ok {
			p.ID = id
			p.PageURL = PageURL(id)
		} else if strings.Contains(imageURL, "pexels.com") {
			p.PageURL = imageURL
		}
		return p, true

	case APIPhotoEntry:
		if entry.ImageURL == "" {
			return store.PhotoEntry{}, false
		}
		id := entry.ID
		if id == "" {
			id, _ = ExtractPhotoID(entry.PageURL)
		}
		if id == "" {
			id, _ = ExtractPhotoID(entry.ImageURL)
		}
		p := store.PhotoEntry{
			ImageURL:        entry.ImageURL,
			PageURL:         entry.PageURL,
			PhotographerURL: entry.PhotographerURL,
			ID:              id,
		}
		if p.PageURL == "" && id != "" {
			p.PageURL = PageURL(id)
		}
		return p, true
	}
	return store.PhotoEntry{}, false
}

// NormalizeAll normalizes entries in order, dropping the unusable ones
func NormalizeAll[E Entry](entries []E) []store.PhotoEntry {
	photos := make([]store.PhotoEntry, 0, len(entries))
	for _, e := range entries {
		if p, ok := Normalize(e); ok {
			photos = append(photos, p)
		}
	}
	return photos
}
