package store

import (
	"encoding/json"
	"log/slog"
	"time"
)

const (
	// CacheDuration is how long a resolved collection stays valid
	CacheDuration = 24 * time.Hour

	cacheKeyPrefix = "pexelCache_"
)

// CacheKey is the storage key for a collection's cached photo list
func CacheKey(collectionID string) string {
	return cacheKeyPrefix + collectionID
}

// PhotoCache is an expiring, best-effort cache of resolved collections. It is
// advisory only: any storage failure or corrupt record degrades to a miss.
type PhotoCache struct {
	kv  KeyValueStore
	ttl time.Duration
	now func() time.Time
}

func NewPhotoCache(kv KeyValueStore) *PhotoCache {
	return &PhotoCache{
		kv:  kv,
		ttl: CacheDuration,
		now: time.Now,
	}
}

// CachePhotoURLs stores entries for the collection stamped with the current time
func (c *PhotoCache) CachePhotoURLs(collectionID string, entries []PhotoEntry) {
	cacheEntry := CacheEntry{
		Timestamp: c.now().UnixMilli(),
		URLs:      entries,
	}
	data, err := json.Marshal(cacheEntry)
	if err != nil {
		slog.Error("failed to encode cache entry", "collection_id", collectionID, "error", err)
		return
	}
	if err := c.kv.Set(CacheKey(collectionID), string(data)); err != nil {
		slog.Error("failed to save cache entry", "collection_id", collectionID, "error", err)
		return
	}
	slog.Info("cached photo urls", "collection_id", collectionID, "count", len(entries))
}

// GetCachedPhotoURLs returns the cached entries for the collection, or nil when
// they are absent, unreadable, empty or expired. Expired records are removed.
func (c *PhotoCache) GetCachedPhotoURLs(collectionID string) []PhotoEntry {
	key := CacheKey(collectionID)
	raw, ok, err := c.kv.Get(key)
	if err != nil {
		slog.Warn("failed to read cache entry", "collection_id", collectionID, "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var cacheEntry CacheEntry
	if err := json.Unmarshal([]byte(raw), &cacheEntry); err != nil {
		slog.Debug("ignoring corrupt cache entry", "collection_id", collectionID, "error", err)
		return nil
	}

	age := c.now().UnixMilli() - cacheEntry.Timestamp
	if age > c.ttl.Milliseconds() {
		slog.Info("cache expired", "collection_id", collectionID)
		if err := c.kv.Clear(key); err != nil {
			slog.Warn("failed to remove expired cache entry", "collection_id", collectionID, "error", err)
		}
		return nil
	}

	if len(cacheEntry.URLs) == 0 {
		return nil
	}

	slog.Info("using cached photo urls", "collection_id", collectionID, "count", len(cacheEntry.URLs))
	return cacheEntry.URLs
}
