package store

// PhotoEntry is one displayable photo and its attribution. ImageURL is never
// empty, the rest are best effort.
type PhotoEntry struct {
	ImageURL        string `json:"imageUrl"`
	PageURL         string `json:"pageUrl,omitempty"`
	PhotographerURL string `json:"photographerUrl,omitempty"`
	ID              string `json:"id,omitempty"`
}

// CacheEntry is the persisted form of a resolved collection.
type CacheEntry struct {
	Timestamp int64        `json:"timestamp"`
	URLs      []PhotoEntry `json:"urls"`
}

// Settings are the stored remote source credentials.
type Settings struct {
	APIKey            string `json:"api_key"`
	CollectionID      string `json:"collection_id"`
	LastCollectionURL string `json:"last_collection_url"`
}

// Configured reports whether both credentials needed for the remote track exist
func (s Settings) Configured() bool {
	return s.APIKey != "" && s.CollectionID != ""
}
