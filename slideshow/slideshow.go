// Package slideshow rotates photos on the frame. It keeps two mutually
// exclusive tracks: the remote track fed by a Pexels collection and the
// default track fed by the bundled url list.
package slideshow

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/store"
)

// DefaultInterval is how long each photo stays on screen
const DefaultInterval = 5 * time.Minute

type Track int

const (
	Remote Track = iota
	Default
)

func (t Track) String() string {
	switch t {
	case Remote:
		return "remote"
	case Default:
		return "default"
	default:
		return fmt.Sprintf("track(%d)", int(t))
	}
}

func (t Track) other() Track {
	if t == Remote {
		return Default
	}
	return Remote
}

// Renderer displays the photo the engine picked
type Renderer interface {
	Render(photo store.PhotoEntry, alt string)
	ShowPlaceholder(alt string)
}

// State is a copy of one track's slideshow state
type State struct {
	Images       []store.PhotoEntry `json:"images"`
	CurrentIndex int                `json:"current_index"`
	Running      bool               `json:"running"`
	Paused       bool               `json:"paused"`
}

type trackState struct {
	images       []store.PhotoEntry
	currentIndex int
	handle       Handle
	// armed counts arm calls so a tick from a disarmed handle is ignored
	armed  uint64
	paused bool
}

type Engine struct {
	mu sync.Mutex

	renderer     Renderer
	translations i18n.Translations
	scheduler    Scheduler
	interval     time.Duration
	rng          *rand.Rand

	tracks [2]*trackState
}

type Option func(*Engine)

func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func NewEngine(renderer Renderer, translations i18n.Translations, opts ...Option) *Engine {
	e := &Engine{
		renderer:     renderer,
		translations: translations,
		scheduler:    TickerScheduler{},
		interval:     DefaultInterval,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		tracks:       [2]*trackState{{}, {}},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start replaces the track's photos with a shuffled copy of entries, shows
// the first one right away and rotates every interval after that. The other
// track is stopped first. With no entries the track is left stopped and the
// frame asks to be configured.
func (e *Engine) Start(track Track, entries []store.PhotoEntry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(entries) == 0 {
		e.stop(track)
		e.renderer.ShowPlaceholder(e.translations.Get("wallpaperAltConfigure"))
		return false
	}

	e.stop(track.other())

	ts := e.tracks[track]
	ts.images = slices.Clone(entries)
	e.shuffle(ts.images)
	ts.currentIndex = 0
	ts.paused = false
	e.advance(track)
	e.arm(track)

	slog.Info("slideshow started", "track", track, "count", len(entries), "interval", e.interval)
	return true
}

// Advance shows the current photo of the track and moves to the next one,
// reshuffling once every photo has been shown.
func (e *Engine) Advance(track Track) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(track)
}

// Stop disarms the track and forgets its photos
func (e *Engine) Stop(track Track) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stop(track)
}

// Pause disarms the running track but keeps its photos and position
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	track, ok := e.running()
	if !ok {
		return
	}
	ts := e.tracks[track]
	e.disarm(ts)
	ts.paused = true
	slog.Info("slideshow paused", "track", track)
}

// Resume re-arms a paused track
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, ts := range e.tracks {
		if !ts.paused {
			continue
		}
		ts.paused = false
		if len(ts.images) > 0 {
			e.arm(Track(i))
			slog.Info("slideshow resumed", "track", Track(i))
		}
	}
}

// Next advances whichever track is showing, reporting false if none is
func (e *Engine) Next() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, ts := range e.tracks {
		if ts.handle != nil || ts.paused {
			e.advance(Track(i))
			return true
		}
	}
	return false
}

// Active returns the track currently rotating
func (e *Engine) Active() (Track, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running()
}

// Snapshot copies the state of a track
func (e *Engine) Snapshot(track Track) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	ts := e.tracks[track]
	return State{
		Images:       slices.Clone(ts.images),
		CurrentIndex: ts.currentIndex,
		Running:      ts.handle != nil,
		Paused:       ts.paused,
	}
}

func (e *Engine) running() (Track, bool) {
	for i, ts := range e.tracks {
		if ts.handle != nil {
			return Track(i), true
		}
	}
	return 0, false
}

func (e *Engine) advance(track Track) {
	ts := e.tracks[track]
	if len(ts.images) == 0 {
		return
	}

	photo := ts.images[ts.currentIndex]
	e.renderer.Render(photo, e.caption(track, ts.currentIndex+1, len(ts.images)))

	ts.currentIndex = (ts.currentIndex + 1) % len(ts.images)
	if ts.currentIndex == 0 {
		e.shuffle(ts.images)
	}
}

func (e *Engine) caption(track Track, n, total int) string {
	wallpaper := e.translations.Get("wallpaperAltWallpaper")
	if track == Default {
		wallpaper += " (Default)"
	}
	return fmt.Sprintf("%s %d %s %d", wallpaper, n, e.translations.Get("wallpaperAltOf"), total)
}

func (e *Engine) stop(track Track) {
	ts := e.tracks[track]
	wasActive := ts.handle != nil || len(ts.images) > 0
	e.disarm(ts)
	ts.images = nil
	ts.currentIndex = 0
	ts.paused = false
	if wasActive && track == Default {
		slog.Info("default slideshow stopped")
	}
}

func (e *Engine) arm(track Track) {
	ts := e.tracks[track]
	e.disarm(ts)
	ts.armed++
	armed := ts.armed
	ts.handle = e.scheduler.Every(e.interval, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if ts.handle == nil || ts.armed != armed {
			return
		}
		e.advance(track)
	})
}

func (e *Engine) disarm(ts *trackState) {
	if ts.handle != nil {
		ts.handle.Stop()
		ts.handle = nil
	}
}

func (e *Engine) shuffle(images []store.PhotoEntry) {
	e.rng.Shuffle(len(images), func(i, j int) {
		images[i], images[j] = images[j], images[i]
	})
}
