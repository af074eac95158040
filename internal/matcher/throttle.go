package matcher

import (
	"context"
	"sync"
	"time"
)

// Throttle enforces a fixed minimum spacing between external lookups. A plain
// fixed delay, deliberately not a token bucket.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a throttle with the given minimum inter-call spacing.
// A non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Wait blocks until the minimum spacing since the previous call has elapsed,
// or the context is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.interval <= 0 {
		return nil
	}

	t.mu.Lock()
	now := time.Now()
	next := t.last.Add(t.interval)
	if next.Before(now) {
		next = now
	}
	t.last = next
	t.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithRetry runs fn, retrying once per allowed retry after a network-class
// error. The throttle spacing applies before every attempt.
func (t *Throttle) WithRetry(ctx context.Context, retries int, fn func() error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if werr := t.Wait(ctx); werr != nil {
			return werr
		}
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
