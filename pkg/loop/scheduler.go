package loop

import (
	"sync"
	"time"
)

// Scheduler runs a callback before the next frame. The returned cancel
// func drops the callback if it has not started yet.
type Scheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// ManualScheduler queues callbacks until Step is called. It is used by
// tests, the headless renderer and frontends that own their main loop.
type ManualScheduler struct {
	queue []*request
}

type request struct {
	fn       func()
	canceled bool
}

// NewManualScheduler creates an empty manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestFrame queues fn for the next Step
func (s *ManualScheduler) RequestFrame(fn func()) func() {
	r := &request{fn: fn}
	s.queue = append(s.queue, r)
	return func() { r.canceled = true }
}

// Pending returns the number of queued, uncanceled callbacks
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, r := range s.queue {
		if !r.canceled {
			n++
		}
	}
	return n
}

// Step runs the callbacks queued so far and returns how many ran.
// Callbacks requested while stepping wait for the next Step.
func (s *ManualScheduler) Step() int {
	queue := s.queue
	s.queue = nil

	ran := 0
	for _, r := range queue {
		if r.canceled {
			continue
		}
		r.fn()
		ran++
	}
	return ran
}

// Run steps n times and returns the total number of callbacks run
func (s *ManualScheduler) Run(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total += s.Step()
	}
	return total
}

// TickerScheduler fires callbacks at a fixed frame rate. Callbacks are
// handed to the executor, which must run them on the UI goroutine
// (fyne.Do for example).
type TickerScheduler struct {
	interval time.Duration
	execute  func(func())

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// NewTickerScheduler creates a scheduler running at fps frames per second
func NewTickerScheduler(fps int, execute func(func())) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	if execute == nil {
		execute = func(fn func()) { fn() }
	}
	return &TickerScheduler{
		interval: time.Second / time.Duration(fps),
		execute:  execute,
		timers:   make(map[*time.Timer]struct{}),
	}
}

// Interval returns the frame interval
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// RequestFrame posts fn to the executor after one frame interval
func (s *TickerScheduler) RequestFrame(fn func()) func() {
	var t *time.Timer
	s.mu.Lock()
	t = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		delete(s.timers, t)
		s.mu.Unlock()
		s.execute(fn)
	})
	s.timers[t] = struct{}{}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.Stop()
		delete(s.timers, t)
	}
}

// Stop cancels every pending callback
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t := range s.timers {
		t.Stop()
		delete(s.timers, t)
	}
}
