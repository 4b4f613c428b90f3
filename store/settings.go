package store

import (
	"errors"
	"fmt"
)

const (
	KeyAPIKey            = "pexelWallpaper.apiKey"
	KeyCollectionID      = "pexelWallpaper.collectionId"
	KeyLastCollectionURL = "pexelWallpaper.lastCollectionUrl"
)

// GetSettings reads the stored credentials. Missing keys are left empty.
func GetSettings(kv KeyValueStore) (*Settings, error) {
	var s Settings
	for key, dst := range map[string]*string{
		KeyAPIKey:            &s.APIKey,
		KeyCollectionID:      &s.CollectionID,
		KeyLastCollectionURL: &s.LastCollectionURL,
	} {
		value, _, err := kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("get settings: %w", err)
		}
		*dst = value
	}
	return &s, nil
}

// UpsertSettings writes every field, clearing the ones that are empty
func UpsertSettings(kv KeyValueStore, s *Settings) error {
	err := errors.Join(
		kv.Set(KeyAPIKey, s.APIKey),
		kv.Set(KeyCollectionID, s.CollectionID),
		kv.Set(KeyLastCollectionURL, s.LastCollectionURL),
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// ClearSettings removes the stored credentials
func ClearSettings(kv KeyValueStore) error {
	return UpsertSettings(kv, &Settings{})
}
