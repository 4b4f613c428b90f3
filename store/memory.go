package store

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryEntries = 256

// MemoryStore is the in-memory KeyValueStore used when no durable medium is
// available. Least recently used entries are evicted past its size.
type MemoryStore struct {
	entries *lru.Cache[string, string]
}

var _ KeyValueStore = (*MemoryStore)(nil)

func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = defaultMemoryEntries
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory store: %w", err)
	}
	return &MemoryStore{entries: entries}, nil
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	value, ok := m.entries.Get(key)
	return value, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	if value == "" {
		return m.Clear(key)
	}
	m.entries.Add(key, value)
	return nil
}

func (m *MemoryStore) Clear(key string) error {
	m.entries.Remove(key)
	return nil
}
