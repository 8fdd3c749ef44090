package orrery

import (
	"sync"
	"time"
)

const (
	// FrameInterval is the default frame period (~60 FPS).
	FrameInterval = 16 * time.Millisecond
)

// Scheduler delivers frame ticks to the render loop until stopped.
type Scheduler interface {
	Frames() <-chan time.Time
	Stop()
}

// TickerScheduler schedules frames at a fixed interval.
type TickerScheduler struct {
	ticker *time.Ticker
}

// NewTickerScheduler returns a scheduler ticking every interval (FrameInterval if not positive).
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &TickerScheduler{time.NewTicker(interval)}
}

// Frames implements Scheduler.
func (s *TickerScheduler) Frames() <-chan time.Time {
	return s.ticker.C
}

// Stop implements Scheduler.
func (s *TickerScheduler) Stop() {
	s.ticker.Stop()
}

// ManualScheduler delivers a frame each time Tick is called. A single frame may
// be pending at a time.
type ManualScheduler struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

// NewManualScheduler returns a stepped scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{ch: make(chan time.Time, 1), stopped: make(chan struct{})}
}

// Tick schedules one frame and blocks until the previous pending frame was
// consumed. It returns false once the scheduler is stopped.
func (s *ManualScheduler) Tick() bool {
	select {
	case <-s.stopped:
		return false
	default:
	}
	select {
	case s.ch <- time.Now():
		return true
	case <-s.stopped:
		return false
	}
}

// Frames implements Scheduler.
func (s *ManualScheduler) Frames() <-chan time.Time {
	return s.ch
}

// Stop implements Scheduler.
func (s *ManualScheduler) Stop() {
	s.once.Do(func() { close(s.stopped) })
}
