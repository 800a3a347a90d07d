package behavior

import (
	"sync"
	"time"
)

// Debouncer delays a callback until interval has passed without another
// Trigger. Only the last callback of a burst runs (trailing edge). At most
// one timer is live at any time.
type Debouncer struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	timer    Timer
	gen      uint64
}

// NewDebouncer builds a debouncer. A nil clock uses SystemClock.
func NewDebouncer(clock Clock, interval time.Duration) *Debouncer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Debouncer{clock: clock, interval: interval}
}

// Trigger restarts the quiet period and replaces the pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether a callback is scheduled.
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
