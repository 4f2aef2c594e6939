package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestPacer_FirstWaitImmediate(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := NewPacer(500*time.Millisecond, clock)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}
}

func TestPacer_SecondWaitBlocksForInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := NewPacer(500*time.Millisecond, clock)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- p.Wait(context.Background())
	}()

	// The pacer must be parked on its timer, not returning early.
	clock.BlockUntil(1)
	select {
	case <-done:
		t.Fatal("second Wait returned before the interval elapsed")
	default:
	}

	clock.Advance(500 * time.Millisecond)
	if err := <-done; err != nil {
		t.Fatalf("second Wait failed: %v", err)
	}
}

func TestPacer_ContextCancellation(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := NewPacer(time.Hour, clock)

	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Wait(ctx)
	}()

	clock.BlockUntil(1)
	cancel()

	if err := <-done; err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPacer_ZeroIntervalDisablesPacing(t *testing.T) {
	p := NewPacer(0, clockwork.NewFakeClock())

	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait %d failed: %v", i, err)
		}
	}
}
