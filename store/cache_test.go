package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("unavailable") }
func (failingStore) Set(string, string) error         { return errors.New("unavailable") }
func (failingStore) Clear(string) error               { return errors.New("unavailable") }

func TestPhotoCacheRoundTrip(t *testing.T) {
	cache := NewPhotoCache(newTestDatabase(t))
	entry := PhotoEntry{
		ImageURL:        "https://images.pexels.com/photos/123/pexels-photo-123.jpeg",
		PageURL:         "https://www.pexels.com/photo/123/",
		PhotographerURL: "https://www.pexels.com/@someone",
		ID:              "123",
	}

	cache.CachePhotoURLs("c1", []PhotoEntry{entry})

	require.Equal(t, []PhotoEntry{entry}, cache.GetCachedPhotoURLs("c1"))
	require.Nil(t, cache.GetCachedPhotoURLs("c2"))
}

func TestPhotoCacheExpiry(t *testing.T) {
	kv := newTestMemoryStore(t)
	cache := NewPhotoCache(kv)
	now := time.Now()
	cache.now = func() time.Time { return now }

	stale := CacheEntry{
		Timestamp: now.Add(-(CacheDuration + time.Second)).UnixMilli(),
		URLs:      []PhotoEntry{{ImageURL: "https://example.com/a.jpg"}},
	}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, kv.Set(CacheKey("c1"), string(data)))

	require.Nil(t, cache.GetCachedPhotoURLs("c1"))

	_, ok, err := kv.Get(CacheKey("c1"))
	require.NoError(t, err)
	require.False(t, ok, "expired entry should be deleted on read")
}

func TestPhotoCacheBoundary(t *testing.T) {
	cache := NewPhotoCache(newTestMemoryStore(t))
	start := time.Now()
	cache.now = func() time.Time { return start }
	cache.CachePhotoURLs("c1", []PhotoEntry{{ImageURL: "https://example.com/a.jpg"}})

	cache.now = func() time.Time { return start.Add(CacheDuration) }
	require.Len(t, cache.GetCachedPhotoURLs("c1"), 1)

	cache.now = func() time.Time { return start.Add(CacheDuration + time.Millisecond) }
	require.Nil(t, cache.GetCachedPhotoURLs("c1"))
}

func TestPhotoCacheCorruptAndEmpty(t *testing.T) {
	kv := newTestMemoryStore(t)
	cache := NewPhotoCache(kv)

	require.NoError(t, kv.Set(CacheKey("bad"), "{not json"))
	require.Nil(t, cache.GetCachedPhotoURLs("bad"))

	cache.CachePhotoURLs("empty", nil)
	require.Nil(t, cache.GetCachedPhotoURLs("empty"))
}

func TestPhotoCacheStorageFailure(t *testing.T) {
	cache := NewPhotoCache(failingStore{})

	require.NotPanics(t, func() {
		cache.CachePhotoURLs("c1", []PhotoEntry{{ImageURL: "https://example.com/a.jpg"}})
	})
	require.Nil(t, cache.GetCachedPhotoURLs("c1"))
}
