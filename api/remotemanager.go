package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/pexels"
	"github.com/aouyang1/pexelwallpaper/slideshow"
	"github.com/aouyang1/pexelwallpaper/store"
)

const (
	fetchedStatusDuration = 3 * time.Second
	cachedStatusDuration  = 1500 * time.Millisecond
)

// RemoteManager resolves a Pexels collection into photos, reporting progress
// on the status display and keeping the collection cache warm
type RemoteManager struct {
	client       *pexels.Client
	cache        *store.PhotoCache
	status       StatusDisplay
	frame        slideshow.Renderer
	translations i18n.Translations
}

func NewRemoteManager(
	client *pexels.Client,
	cache *store.PhotoCache,
	status StatusDisplay,
	frame slideshow.Renderer,
	translations i18n.Translations,
) *RemoteManager {
	return &RemoteManager{
		client:       client,
		cache:        cache,
		status:       status,
		frame:        frame,
		translations: translations,
	}
}

// Guard runs fn only while the load that calls it is still current and
// reports whether it ran
type Guard func(fn func()) bool

// CachedPhotos returns the cached collection, announcing the hit, or nil on a
// miss
func (r *RemoteManager) CachedPhotos(collectionID string, show Guard) []store.PhotoEntry {
	photos := r.cache.GetCachedPhotoURLs(collectionID)
	if len(photos) == 0 {
		return nil
	}
	slog.Info("using cached collection", "collection_id", collectionID, "count", len(photos))
	msg := fmt.Sprintf("%d %s (cached). %s...",
		len(photos),
		r.translations.Get("wallpaperAltWallpaper"),
		r.translations.Get("slideshowResumed"),
	)
	show(func() {
		r.status.ShowStatus(msg, false, StatusOptions{Duration: cachedStatusDuration})
	})
	return photos
}

// FetchPhotos downloads every page of the collection. Failures are shown on
// the status display and yield no photos. Only a non empty result is cached.
// A load that is no longer current does not touch the display and is not
// started at all.
func (r *RemoteManager) FetchPhotos(ctx context.Context, apiKey, collectionID string, show Guard) []store.PhotoEntry {
	current := show(func() {
		r.status.ShowStatus(r.translations.Get("statusLoading"), false, StatusOptions{Persistent: true})
		r.frame.ShowPlaceholder(r.translations.Get("wallpaperAltFetching"))
	})
	if !current {
		return nil
	}

	start := time.Now()
	photos, err := r.client.FetchCollection(ctx, apiKey, collectionID)
	if err != nil {
		if ctx.Err() != nil {
			slog.Info("collection fetch cancelled", "collection_id", collectionID)
			return nil
		}
		slog.Warn("failed to fetch collection", "collection_id", collectionID, "error", err)
		show(func() {
			r.status.ShowStatus(pexels.ErrorMessage(r.translations, err), true, StatusOptions{Persistent: true})
			r.frame.ShowPlaceholder(r.translations.Get("wallpaperAltConfigure"))
		})
		return nil
	}

	if len(photos) == 0 {
		slog.Warn("collection has no displayable photos", "collection_id", collectionID)
		show(func() {
			r.status.ShowStatus(r.translations.Get("statusNoPhotosFound"), true, StatusOptions{Persistent: true})
		})
		return nil
	}

	// a superseded fetch still warms the cache
	r.cache.CachePhotoURLs(collectionID, photos)
	slog.Info("fetched collection", "collection_id", collectionID, "count", len(photos), "elapsed", time.Since(start))

	msg := fmt.Sprintf("%s %d %s. %s...",
		r.translations.Get("statusLoading"),
		len(photos),
		r.translations.Get("wallpaperAltWallpaper"),
		r.translations.Get("slideshowResumed"),
	)
	show(func() {
		r.status.ShowStatus(msg, false, StatusOptions{Duration: fetchedStatusDuration})
	})
	return photos
}
