package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aouyang1/pexelwallpaper/store"
	"github.com/aouyang1/pexelwallpaper/util"
	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultBaseURL   = "https://api.pexels.com/v1/"
	DefaultUserAgent = "PexelWallpaperDynamic/1.4"
	DefaultPhotoSize = "original"
	PhotosPerPage    = 80

	defaultPageDelay = 200 * time.Millisecond
)

// Media is one item of a collection page
type Media struct {
	Type            string            `json:"type"`
	ID              int64             `json:"id"`
	URL             string            `json:"url"`
	PhotographerURL string            `json:"photographer_url"`
	Src             map[string]string `json:"src"`
}

// CollectionPage is the body of GET /collections/{id}
type CollectionPage struct {
	Page         int     `json:"page"`
	TotalResults int     `json:"total_results"`
	Media        []Media `json:"media"`
	NextPage     string  `json:"next_page"`
}

type Client struct {
	baseURL   string
	userAgent string
	photoSize string
	pageDelay time.Duration
	client    *http.Client

	maxTries   uint
	retryDelay time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithPhotoSize(size string) Option {
	return func(c *Client) { c.photoSize = size }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithPageDelay sets the pause between consecutive page requests
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) { c.pageDelay = d }
}

// WithRetries repeats a failed page request up to tries times in total, for
// network failures, rate limiting and server errors only. The frame server
// never retries, the exporter does.
func WithRetries(tries uint, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.maxTries = tries
		c.retryDelay = initialDelay
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   baseURL,
		userAgent: DefaultUserAgent,
		photoSize: DefaultPhotoSize,
		pageDelay: defaultPageDelay,
		client:    &http.Client{Timeout: 30 * time.Second},
		maxTries:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectionURL is the first page of a collection listing
func (c *Client) CollectionURL(collectionID string) string {
	return fmt.Sprintf("%scollections/%s?type=photos&per_page=%d&page=1",
		c.baseURL, url.PathEscape(collectionID), PhotosPerPage)
}

// FetchCollection walks every page of the collection in order and returns the
// photos available at the configured size. Any failed page aborts the whole
// walk and nothing gathered so far is returned.
func (c *Client) FetchCollection(ctx context.Context, apiKey, collectionID string) ([]store.PhotoEntry, error) {
	var photos []store.PhotoEntry
	nextPageURL := c.CollectionURL(collectionID)

	for nextPageURL != "" {
		page, err := c.fetchPageWithRetry(ctx, apiKey, nextPageURL)
		if err != nil {
			return nil, err
		}

		photos = append(photos, c.Photos(page)...)

		nextPageURL = page.NextPage
		if nextPageURL == "" {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pageDelay):
		}
	}

	return photos, nil
}

// Photos returns the displayable photos of a page in page order
func (c *Client) Photos(page *CollectionPage) []store.PhotoEntry {
	var entries []APIPhotoEntry
	for _, media := range page.Media {
		entry, ok := c.photoEntry(media)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return NormalizeAll(entries)
}

func (c *Client) fetchPageWithRetry(ctx context.Context, apiKey, pageURL string) (*CollectionPage, error) {
	if c.maxTries <= 1 {
		return c.FetchPage(ctx, apiKey, pageURL)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryDelay
	operation := func() (*CollectionPage, error) {
		page, err := c.FetchPage(ctx, apiKey, pageURL)
		if err != nil && !IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		if err != nil {
			slog.Warn("page request failed, retrying", "url", pageURL, "error", err)
		}
		return page, err
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
	)
}

func (c *Client) photoEntry(m Media) (APIPhotoEntry, bool) {
	if !util.DisplayableMediaTypes.Contains(m.Type) {
		return APIPhotoEntry{}, false
	}
	src := m.Src[c.photoSize]
	if src == "" {
		slog.Debug("photo missing display size", "id", m.ID, "size", c.photoSize)
		return APIPhotoEntry{}, false
	}

	entry := APIPhotoEntry{
		ImageURL:        src,
		PhotographerURL: m.PhotographerURL,
	}
	if m.ID != 0 {
		entry.ID = strconv.FormatInt(m.ID, 10)
	} else if id, ok := ExtractPhotoID(m.URL); ok {
		entry.ID = id
	}
	return entry, true
}

// FetchPage requests a single collection page
func (c *Client) FetchPage(ctx context.Context, apiKey, pageURL string) (*CollectionPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FetchError{Network: true, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchErr := &FetchError{Status: resp.StatusCode}
		if json.Valid(body) {
			fetchErr.Details = body
		}
		return nil, fetchErr
	}

	var page CollectionPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &page, nil
}

// IsRetryable reports whether a page request is worth repeating
func IsRetryable(err error) bool {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	return fetchErr.Network || fetchErr.Status == http.StatusTooManyRequests || fetchErr.Status >= 500
}
