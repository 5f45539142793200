package debounce

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs only the most recent of a burst of requests. Every Schedule
// call cancels the pending one, waits for a quiet period and then computes a
// result; the result is applied only if no newer request arrived meanwhile.
type Debouncer[T any] struct {
	delay time.Duration

	applyMu sync.Mutex
	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	stopped bool
}

func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{delay: delay}
}

// Schedule replaces any pending request with this one. compute receives a
// context that is cancelled once the request is superseded. apply calls are
// serialised but do not block Schedule.
func (d *Debouncer[T]) Schedule(ctx context.Context, compute func(ctx context.Context) (T, error), apply func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopPending()
	d.gen++
	gen := d.gen
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		v, err := compute(runCtx)
		if err != nil || runCtx.Err() != nil {
			return
		}
		d.applyMu.Lock()
		defer d.applyMu.Unlock()
		if !d.current(gen) {
			return
		}
		apply(v)
	})
}

func (d *Debouncer[T]) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && d.gen == gen
}

// Stop drops the pending request. Later Schedule calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.stopPending()
}

func (d *Debouncer[T]) stopPending() {
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}
}
