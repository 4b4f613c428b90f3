package slideshow

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/aouyang1/pexelwallpaper/i18n"
	"github.com/aouyang1/pexelwallpaper/store"
	"github.com/stretchr/testify/require"
)

type manualHandle struct {
	fn      func()
	stopped bool
}

func (h *manualHandle) Stop() { h.stopped = true }

// manualScheduler records armed tasks and fires them on demand
type manualScheduler struct {
	mu      sync.Mutex
	handles []*manualHandle
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &manualHandle{fn: fn}
	s.handles = append(s.handles, h)
	return h
}

func (s *manualScheduler) active() []*manualHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []*manualHandle
	for _, h := range s.handles {
		if !h.stopped {
			active = append(active, h)
		}
	}
	return active
}

func (s *manualScheduler) tick() {
	for _, h := range s.active() {
		h.fn()
	}
}

type rendered struct {
	photo store.PhotoEntry
	alt   string
}

type recordingRenderer struct {
	mu          sync.Mutex
	shown       []rendered
	placeholder string
}

func (r *recordingRenderer) Render(photo store.PhotoEntry, alt string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, rendered{photo: photo, alt: alt})
}

func (r *recordingRenderer) ShowPlaceholder(alt string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placeholder = alt
}

func photos(n int) []store.PhotoEntry {
	entries := make([]store.PhotoEntry, n)
	for i := range entries {
		entries[i] = store.PhotoEntry{ImageURL: fmt.Sprintf("https://example.com/%d.jpg", i)}
	}
	return entries
}

func newTestEngine() (*Engine, *manualScheduler, *recordingRenderer) {
	scheduler := &manualScheduler{}
	renderer := &recordingRenderer{}
	engine := NewEngine(renderer, i18n.English(),
		WithScheduler(scheduler),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	return engine, scheduler, renderer
}

func urls(entries []store.PhotoEntry) map[string]int {
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.ImageURL]++
	}
	return counts
}

func TestShuffleIsPermutation(t *testing.T) {
	engine, _, _ := newTestEngine()
	for n := 1; n <= 20; n++ {
		entries := photos(n)
		shuffled := append([]store.PhotoEntry(nil), entries...)
		engine.shuffle(shuffled)
		require.Equal(t, urls(entries), urls(shuffled))
	}
}

func TestStartRendersFirstPhotoAndArms(t *testing.T) {
	engine, scheduler, renderer := newTestEngine()
	entries := photos(3)

	require.True(t, engine.Start(Remote, entries))

	require.Len(t, renderer.shown, 1)
	require.Equal(t, "Wallpaper 1 of 3", renderer.shown[0].alt)
	require.Len(t, scheduler.active(), 1)

	state := engine.Snapshot(Remote)
	require.True(t, state.Running)
	require.Equal(t, 1, state.CurrentIndex)
	require.Equal(t, urls(entries), urls(state.Images))

	// the caller's slice is copied, not shuffled in place
	require.Equal(t, "https://example.com/0.jpg", entries[0].ImageURL)
	require.Equal(t, "https://example.com/2.jpg", entries[2].ImageURL)
}

func TestStartEmptyIsNoop(t *testing.T) {
	engine, scheduler, renderer := newTestEngine()

	require.False(t, engine.Start(Remote, nil))

	require.Empty(t, renderer.shown)
	require.Empty(t, scheduler.active())
	require.Equal(t, "Configure API Key and Collection URL.", renderer.placeholder)
	_, ok := engine.Active()
	require.False(t, ok)
}

func TestAdvanceCyclesBeforeRepeating(t *testing.T) {
	engine, scheduler, renderer := newTestEngine()
	const n = 5
	engine.Start(Remote, photos(n))

	for range 2*n - 1 {
		scheduler.tick()
	}
	require.Len(t, renderer.shown, 2*n)

	for pass := range 2 {
		seen := map[string]bool{}
		for i, r := range renderer.shown[pass*n : (pass+1)*n] {
			require.False(t, seen[r.photo.ImageURL], "photo repeated within a pass")
			seen[r.photo.ImageURL] = true
			require.Equal(t, fmt.Sprintf("Wallpaper %d of %d", i+1, n), r.alt)
		}
		require.Len(t, seen, n)
	}

	state := engine.Snapshot(Remote)
	require.Equal(t, 0, state.CurrentIndex)
	require.Equal(t, urls(photos(n)), urls(state.Images))
}

func TestAdvanceSinglePhoto(t *testing.T) {
	engine, scheduler, renderer := newTestEngine()
	engine.Start(Default, photos(1))
	scheduler.tick()

	require.Len(t, renderer.shown, 2)
	require.Equal(t, "Wallpaper (Default) 1 of 1", renderer.shown[1].alt)
	require.Equal(t, 0, engine.Snapshot(Default).CurrentIndex)
}

func TestAdvanceEmptyIsNoop(t *testing.T) {
	engine, _, renderer := newTestEngine()
	engine.Advance(Remote)
	require.Empty(t, renderer.shown)
}

func TestTracksAreMutuallyExclusive(t *testing.T) {
	engine, scheduler, _ := newTestEngine()

	engine.Start(Default, photos(2))
	require.Len(t, scheduler.active(), 1)
	defaultHandle := scheduler.active()[0]

	engine.Start(Remote, photos(3))
	require.True(t, defaultHandle.stopped)
	require.Len(t, scheduler.active(), 1)

	def := engine.Snapshot(Default)
	require.False(t, def.Running)
	require.Empty(t, def.Images)
	require.Zero(t, def.CurrentIndex)

	track, ok := engine.Active()
	require.True(t, ok)
	require.Equal(t, Remote, track)

	engine.Start(Default, photos(2))
	require.False(t, engine.Snapshot(Remote).Running)
	track, _ = engine.Active()
	require.Equal(t, Default, track)
}

func TestStopClearsState(t *testing.T) {
	engine, scheduler, renderer := newTestEngine()
	engine.Start(Remote, photos(3))
	handle := scheduler.active()[0]

	engine.Stop(Remote)

	require.True(t, handle.stopped)
	state := engine.Snapshot(Remote)
	require.False(t, state.Running)
	require.Empty(t, state.Images)
	require.Zero(t, state.CurrentIndex)

	// a tick from the stale handle does nothing
	handle.fn()
	require.Len(t, renderer.shown, 1)
}

func TestPauseResumeKeepsPosition(t *testing.T) {
	engine, scheduler, renderer := newTestEngine()
	engine.Start(Remote, photos(4))

	engine.Pause()
	require.Empty(t, scheduler.active())
	state := engine.Snapshot(Remote)
	require.True(t, state.Paused)
	require.Equal(t, 1, state.CurrentIndex)
	require.Len(t, state.Images, 4)

	engine.Resume()
	require.Len(t, scheduler.active(), 1)
	scheduler.tick()
	require.Len(t, renderer.shown, 2)
	require.Equal(t, "Wallpaper 2 of 4", renderer.shown[1].alt)
}

func TestNext(t *testing.T) {
	engine, _, renderer := newTestEngine()
	require.False(t, engine.Next())

	engine.Start(Remote, photos(2))
	require.True(t, engine.Next())
	require.Len(t, renderer.shown, 2)
	require.Equal(t, "Wallpaper 2 of 2", renderer.shown[1].alt)
}

func TestTickerScheduler(t *testing.T) {
	ticks := make(chan struct{}, 10)
	h := TickerScheduler{}.Every(time.Millisecond, func() { ticks <- struct{}{} })

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("ticker never fired")
	}
	h.Stop()
	h.Stop()
}
