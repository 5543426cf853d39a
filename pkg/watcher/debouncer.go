// Package watcher provides debounced scheduling and theme-directory
// watching with fsnotify.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 50 * time.Millisecond

// Debouncer coalesces rapid events into a single callback invocation per
// token. Scheduling the same token again before its delay elapses cancels
// the pending invocation and reschedules. Callbacks may re-schedule their
// own token without leaking timers.
type Debouncer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	seqs    map[string]uint64
	closed  bool
	defDur  time.Duration
}

// NewDebouncer creates a Debouncer with the given default delay, used when
// Schedule is called with a zero duration.
func NewDebouncer(defaultDelay time.Duration) *Debouncer {
	if defaultDelay == 0 {
		defaultDelay = DefaultDebounceDuration
	}
	return &Debouncer{
		timers: make(map[string]*time.Timer),
		seqs:   make(map[string]uint64),
		defDur: defaultDelay,
	}
}

// Schedule runs fn after delay, cancelling any pending invocation for the
// same token. After Close, Schedule is a no-op.
func (d *Debouncer) Schedule(token string, delay time.Duration, fn func()) {
	if delay == 0 {
		delay = d.defDur
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.seqs[token]++
	seq := d.seqs[token]
	if t, ok := d.timers[token]; ok {
		t.Stop()
	}
	d.timers[token] = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// Only the most recently scheduled callback for this token may run.
		// Stop() can return false when the timer already fired, so the seq
		// check is what prevents a stale callback from racing a fresh one.
		if d.closed || seq != d.seqs[token] {
			d.mu.Unlock()
			return
		}
		delete(d.timers, token)
		d.mu.Unlock()

		fn()
	})
	d.mu.Unlock()
}

// Cancel discards any pending invocation for token.
func (d *Debouncer) Cancel(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seqs[token]++
	if t, ok := d.timers[token]; ok {
		t.Stop()
		delete(d.timers, token)
	}
}

// Close cancels every pending invocation and rejects further scheduling.
// Used on session teardown so in-flight timers cannot mutate a closed
// session.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for token, t := range d.timers {
		t.Stop()
		delete(d.timers, token)
	}
}

// Pending reports whether token has a scheduled invocation.
func (d *Debouncer) Pending(token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[token]
	return ok
}
