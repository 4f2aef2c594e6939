package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Pacer is a fixed-interval gate used between external calls inside loops.
// Wait blocks until at least the configured interval has passed since the
// previous Wait returned. A zero or negative interval disables pacing.
type Pacer struct {
	interval time.Duration
	clock    clockwork.Clock

	mu   sync.Mutex
	next time.Time
}

// NewPacer creates a pacer with the given interval. A nil clock uses the
// real clock.
func NewPacer(interval time.Duration, clock clockwork.Clock) *Pacer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pacer{interval: interval, clock: clock}
}

// Wait blocks until the pacing interval has elapsed, or returns the
// context error if ctx is cancelled first.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := p.clock.Now()
	wait := p.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	p.next = now.Add(wait + p.interval)
	p.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}

	timer := p.clock.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
