package search

import (
	"sync"
	"time"
)

// debouncer is a single-slot deferred scheduler: scheduling a task replaces
// any pending, not-yet-fired task outright. Only the most recently scheduled
// task within the delay window ever runs.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Schedule queues fn to run after the delay, canceling any pending task.
func (d *debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops any pending task without running it.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
