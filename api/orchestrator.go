package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/pexels"
	"github.com/aouyang1/pexelwallpaper/slideshow"
	"github.com/aouyang1/pexelwallpaper/store"
)

const (
	ModeRemote  = "remote"
	ModeDefault = "default"
	ModeIdle    = "idle"
)

// ValidationError rejects user supplied settings. Key names the translation
// of the message to show.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Components are the collaborators an Orchestrator is built from
type Components struct {
	Store        store.KeyValueStore
	Client       *pexels.Client
	Source       URLListSource
	Translations i18n.Translations
	EngineOpts   []slideshow.Option
}

// Orchestrator chooses between the remote collection and the default url
// list and feeds the result to the slideshow engine. Every Start, Configure
// and Reset begins a new generation. Work still running for an older
// generation is cancelled and its result is not shown.
type Orchestrator struct {
	kv           store.KeyValueStore
	translations i18n.Translations

	frame  *Frame
	status *StatusBoard
	engine *slideshow.Engine
	remote *RemoteManager
	local  *LocalManager

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewOrchestrator(c Components) *Orchestrator {
	translations := c.Translations
	if translations == nil {
		translations = i18n.English()
	}
	frame := NewFrame()
	status := NewStatusBoard()

	return &Orchestrator{
		kv:           c.Store,
		translations: translations,
		frame:        frame,
		status:       status,
		engine:       slideshow.NewEngine(frame, translations, c.EngineOpts...),
		remote:       NewRemoteManager(c.Client, store.NewPhotoCache(c.Store), status, frame, translations),
		local:        NewLocalManager(c.Source, status, translations),
	}
}

func (o *Orchestrator) Frame() *Frame { return o.frame }

func (o *Orchestrator) Status() *StatusBoard { return o.status }

func (o *Orchestrator) Engine() *slideshow.Engine { return o.engine }

func (o *Orchestrator) Translations() i18n.Translations { return o.translations }

// Start runs the remote track from stored settings, or the default track when
// there are none
func (o *Orchestrator) Start(ctx context.Context) error {
	settings, err := store.GetSettings(o.kv)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx, gen := o.nextGeneration(ctx)
	if settings.Configured() {
		slog.Info("using stored settings", "collection_id", settings.CollectionID)
		o.goRemote(ctx, gen, settings.APIKey, settings.CollectionID)
		return nil
	}

	slog.Info("no api key or collection configured")
	o.frame.ShowPlaceholder(o.translations.Get("wallpaperAltConfigure"))
	o.goDefault(ctx, gen)
	return nil
}

// ValidateSettings checks the user's input and extracts the collection id
func (o *Orchestrator) ValidateSettings(apiKey, collectionURL string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	collectionURL = strings.TrimSpace(collectionURL)
	if apiKey == "" || collectionURL == "" {
		return "", &ValidationError{Key: "errorBothRequired", Message: o.translations.Get("errorBothRequired")}
	}
	id, ok := pexels.ExtractCollectionID(collectionURL)
	if !ok {
		return "", &ValidationError{Key: "errorInvalidPexelsUrl", Message: o.translations.Get("errorInvalidPexelsUrl")}
	}
	return id, nil
}

// Configure stores new credentials and restarts the remote track with them
func (o *Orchestrator) Configure(ctx context.Context, apiKey, collectionURL string) (*store.Settings, error) {
	id, err := o.ValidateSettings(apiKey, collectionURL)
	if err != nil {
		return nil, err
	}

	settings := &store.Settings{
		APIKey:            strings.TrimSpace(apiKey),
		CollectionID:      id,
		LastCollectionURL: strings.TrimSpace(collectionURL),
	}
	if err := store.UpsertSettings(o.kv, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	ctx, gen := o.nextGeneration(ctx)
	slog.Info("settings updated", "collection_id", id)
	o.goRemote(ctx, gen, settings.APIKey, settings.CollectionID)
	return settings, nil
}

// Reset forgets the stored credentials and falls back to the default track
func (o *Orchestrator) Reset(ctx context.Context) error {
	ctx, gen := o.nextGeneration(ctx)
	o.engine.Stop(slideshow.Remote)

	if err := store.ClearSettings(o.kv); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	slog.Info("settings cleared")
	o.frame.ShowPlaceholder(o.translations.Get("wallpaperAltConfigure"))
	o.status.ShowStatus(o.translations.Get("statusSettingsCleared"), false, StatusOptions{})
	o.goDefault(ctx, gen)
	return nil
}

func (o *Orchestrator) Settings() (*store.Settings, error) {
	return store.GetSettings(o.kv)
}

// Mode reports which track is rotating
func (o *Orchestrator) Mode() string {
	track, ok := o.engine.Active()
	if !ok {
		for _, t := range []slideshow.Track{slideshow.Remote, slideshow.Default} {
			if o.engine.Snapshot(t).Paused {
				return t.String()
			}
		}
		return ModeIdle
	}
	return track.String()
}

func (o *Orchestrator) Pause() {
	o.engine.Pause()
}

func (o *Orchestrator) Resume() {
	o.engine.Resume()
}

// Wait blocks until loads started so far have finished
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Close cancels pending loads and stops both tracks
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.generation++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.mu.Unlock()

	o.wg.Wait()
	o.engine.Stop(slideshow.Remote)
	o.engine.Stop(slideshow.Default)
	o.status.HideStatus()
}

func (o *Orchestrator) nextGeneration(parent context.Context) (context.Context, uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	// loads outlive the request that started them
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	o.cancel = cancel
	o.generation++
	return ctx, o.generation
}

func (o *Orchestrator) guard(gen uint64) Guard {
	return func(fn func()) bool { return o.apply(gen, fn) }
}

// apply runs fn only while gen is the latest generation
func (o *Orchestrator) apply(gen uint64, fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	fn()
	return true
}

func (o *Orchestrator) goRemote(ctx context.Context, gen uint64, apiKey, collectionID string) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		show := o.guard(gen)
		if !show(func() { o.engine.Stop(slideshow.Default) }) {
			slog.Info("dropping stale collection load", "collection_id", collectionID, "generation", gen)
			return
		}

		photos := o.remote.CachedPhotos(collectionID, show)
		if photos == nil {
			photos = o.remote.FetchPhotos(ctx, apiKey, collectionID, show)
		}

		applied := show(func() {
			// an empty result leaves both tracks stopped with the fetch's
			// status still showing
			o.engine.Start(slideshow.Remote, photos)
		})
		if !applied {
			slog.Info("dropping stale collection result", "collection_id", collectionID, "generation", gen)
		}
	}()
}

func (o *Orchestrator) goDefault(ctx context.Context, gen uint64) {
	if _, running := o.engine.Active(); running {
		return
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		o.apply(gen, func() {
			o.frame.SetAlt(o.translations.Get("wallpaperAltLocalLoading"))
		})
		photos := o.local.LoadDefaultImages(ctx)

		applied := o.apply(gen, func() {
			if len(photos) == 0 {
				o.frame.ShowPlaceholder(o.translations.Get("wallpaperAltLocalError"))
				return
			}
			o.engine.Start(slideshow.Default, photos)
		})
		if !applied {
			slog.Info("dropping stale default url list", "generation", gen)
		}
	}()
}

// IsValidationError reports whether err rejected user input
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
