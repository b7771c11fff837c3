package shopify

import (
	"context"
	"time"
)

// Pacer spaces successive API requests so paginated listings stay under the
// upstream rate limit.
type Pacer interface {
	Wait(ctx context.Context) error
}

type delayPacer struct {
	delay time.Duration
}

// NewDelayPacer returns a pacer that waits a fixed delay, cancellable via
// context.
func NewDelayPacer(delay time.Duration) Pacer {
	return &delayPacer{delay: delay}
}

func (p *delayPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type nopPacer struct{}

// NewNopPacer returns a pacer that never waits
func NewNopPacer() Pacer {
	return nopPacer{}
}

func (nopPacer) Wait(ctx context.Context) error { return nil }
