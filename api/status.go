package api

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aouyang1/pexelwallpaper/api/models"
)

// DefaultStatusDuration is how long a non persistent status stays visible
const DefaultStatusDuration = 4 * time.Second

type StatusOptions struct {
	// Persistent statuses stay up until replaced or hidden
	Persistent bool
	Duration   time.Duration
}

// StatusDisplay shows short messages over the wallpaper
type StatusDisplay interface {
	ShowStatus(message string, isError bool, opts StatusOptions)
	HideStatus()
}

// StatusBoard holds the message the page polls for
type StatusBoard struct {
	mu      sync.Mutex
	message string
	isError bool
	visible bool

	timer *time.Timer
	// shown counts ShowStatus calls so an old timer cannot hide a newer message
	shown uint64
}

var _ StatusDisplay = (*StatusBoard)(nil)

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

func (s *StatusBoard) ShowStatus(message string, isError bool, opts StatusOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimer()
	s.message = message
	s.isError = isError
	s.visible = true
	s.shown++

	if isError {
		slog.Warn("status", "message", message)
	} else {
		slog.Debug("status", "message", message)
	}

	if opts.Persistent {
		return
	}
	d := opts.Duration
	if d <= 0 {
		d = DefaultStatusDuration
	}
	shown := s.shown
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.shown == shown {
			s.visible = false
		}
	})
}

func (s *StatusBoard) HideStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
	s.visible = false
}

func (s *StatusBoard) Current() models.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.StatusResponse{
		Message: s.message,
		IsError: s.isError,
		Visible: s.visible,
	}
}

func (s *StatusBoard) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
