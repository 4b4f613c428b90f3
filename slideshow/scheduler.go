package slideshow

import (
	"sync"
	"time"
)

// Handle is an armed recurring task. Stop disarms it and is safe to call
// more than once.
type Handle interface {
	Stop()
}

// Scheduler arms recurring tasks
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// TickerScheduler runs each task on its own goroutine driven by a time.Ticker
type TickerScheduler struct{}

func (TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-h.done:
				return
			case <-h.ticker.C:
				fn()
			}
		}
	}()
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
