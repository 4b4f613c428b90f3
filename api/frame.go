package api

import (
	"sync"

	"github.com/aouyang1/pexelwallpaper/slideshow"
	"github.com/aouyang1/pexelwallpaper/store"
)

// defaultAttributionURL is linked when the current photo has no page
const defaultAttributionURL = "https://www.pexels.com"

// Frame is the wallpaper image the page displays
type Frame struct {
	mu    sync.RWMutex
	src   string
	alt   string
	photo *store.PhotoEntry
}

var _ slideshow.Renderer = (*Frame)(nil)

func NewFrame() *Frame {
	return &Frame{}
}

func (f *Frame) Render(photo store.PhotoEntry, alt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.src = photo.ImageURL
	f.alt = alt
	f.photo = &photo
}

// ShowPlaceholder blanks the image and forgets the attribution
func (f *Frame) ShowPlaceholder(alt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.src = ""
	f.alt = alt
	f.photo = nil
}

// SetAlt replaces the alt text and leaves the image alone
func (f *Frame) SetAlt(alt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alt = alt
}

type FrameState struct {
	Src   string
	Alt   string
	Photo *store.PhotoEntry
}

func (f *Frame) Current() FrameState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	state := FrameState{Src: f.src, Alt: f.alt}
	if f.photo != nil {
		photo := *f.photo
		state.Photo = &photo
	}
	return state
}

// AttributionURL links to the photo's page, or to Pexels when there is none
func (s FrameState) AttributionURL() string {
	if s.Photo != nil && s.Photo.PageURL != "" {
		return s.Photo.PageURL
	}
	return defaultAttributionURL
}
