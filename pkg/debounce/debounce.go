package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer delays fn until no Trigger call has arrived for the configured
// delay, then runs it once with the value of the last call (trailing edge).
//
// Every Trigger cancels the pending run and schedules a new one. fn runs on a
// timer goroutine; callers that share state with fn must synchronise.
type Debouncer[T any] struct {
	fn    func(T)
	delay time.Duration
	clock clock.Clock

	mu      sync.Mutex
	timer   *clock.Timer
	gen     uint64
	pending bool
	stopped bool
}

// Option configures a Debouncer.
type Option func(*options)

type options struct {
	clock clock.Clock
}

// WithClock replaces the wall clock, typically with clock.NewMock in tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// New returns a Debouncer that runs fn delay after the last Trigger.
// It panics if fn is nil or delay is negative.
func New[T any](delay time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	if fn == nil {
		panic("debounce: nil func")
	}
	if delay < 0 {
		panic("debounce: negative delay")
	}

	o := &options{clock: clock.New()}
	for _, opt := range opts {
		opt(o)
	}

	return &Debouncer[T]{
		fn:    fn,
		delay: delay,
		clock: o.clock,
	}
}

// Trigger schedules fn(v), replacing any pending run.
// It is a no-op after Stop.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	// A timer that already fired may still be waiting for the lock; the
	// generation check makes it a no-op.
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen, v)
	})
}

func (d *Debouncer[T]) fire(gen uint64, v T) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops the pending run, if any, and reports whether one was dropped.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

func (d *Debouncer[T]) cancelLocked() bool {
	if !d.pending {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels any pending run and makes further Trigger calls no-ops.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}
