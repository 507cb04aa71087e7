// Package search provides the debounced search-as-you-type trigger used by
// the directory services.
package search

import (
	"strings"
	"sync"
	"time"
)

// DefaultDelay is the debounce window applied between keystrokes.
const DefaultDelay = 500 * time.Millisecond

// Debouncer delays a search until input has been quiet for the configured
// delay. It owns at most one pending timer: every Trigger cancels the
// previous one. An empty (blank) query bypasses the delay and runs at once.
//
// Cancellation is unconditional. A timer whose callback already started
// when it was superseded still checks the generation under the lock and
// drops its query.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func(query string)
	timer *time.Timer
	gen   uint64
}

// NewDebouncer creates a Debouncer that calls fn with the settled query.
// A non-positive delay makes every Trigger run immediately.
func NewDebouncer(delay time.Duration, fn func(query string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger records a new query, cancelling any pending one.
func (d *Debouncer) Trigger(query string) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.stopLocked()

	if strings.TrimSpace(query) == "" || d.delay <= 0 {
		d.mu.Unlock()
		d.fn(query)
		return
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(query)
	})
	d.mu.Unlock()
}

// Cancel drops any pending query without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.stopLocked()
}

// Pending reports whether a query is waiting for its delay to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
