// Package scheduler provides the timer-backed port.Scheduler.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/tabdock/internal/application/port"
	"github.com/bnema/tabdock/internal/logging"
)

// Debouncer runs keyed callbacks after a quiet period.
type Debouncer struct {
	ctx context.Context

	mu      sync.Mutex
	timers  map[string]*time.Timer
	gen     map[string]uint64
	stopped bool
}

var _ port.Scheduler = (*Debouncer)(nil)

// NewDebouncer creates a debouncer. Panics in callbacks are not recovered.
func NewDebouncer(ctx context.Context) *Debouncer {
	return &Debouncer{
		ctx:    ctx,
		timers: make(map[string]*time.Timer),
		gen:    make(map[string]uint64),
	}
}

// Debounce schedules fn under key, replacing any pending call.
func (d *Debouncer) Debounce(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.gen[key]++
	gen := d.gen[key]

	d.timers[key] = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// a newer Debounce or Cancel won the race with this timer
		if d.stopped || d.gen[key] != gen {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()

		logging.FromContext(d.ctx).Trace().Str("key", key).Msg("debounced call")
		fn()
	})
}

// Cancel drops the pending call for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
	d.gen[key]++
}

// Pending reports whether a call is scheduled under key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.timers[key]
	return ok
}

// Stop cancels every pending call. Later calls to Debounce are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
