package command

import (
	"context"
	"time"
)

// Delayer emulates the latency of an asynchronous operation. Wait returns
// early with ctx.Err() when the context is cancelled.
type Delayer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// SleepDelayer waits on a real timer.
type SleepDelayer struct{}

// Wait blocks for d or until ctx is done.
func (SleepDelayer) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// InstantDelayer never waits. It still honours an already-cancelled context.
type InstantDelayer struct{}

// Wait returns immediately.
func (InstantDelayer) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Latency holds the simulated delay for each asynchronous command.
type Latency struct {
	Upload   time.Duration
	Edit     time.Duration
	Delete   time.Duration
	Generate time.Duration
	Download time.Duration
	Share    time.Duration
}

// DefaultLatency returns the stock delays.
func DefaultLatency() Latency {
	return Latency{
		Upload:   1000 * time.Millisecond,
		Edit:     1000 * time.Millisecond,
		Delete:   1000 * time.Millisecond,
		Generate: 1500 * time.Millisecond,
		Download: 1500 * time.Millisecond,
		Share:    1000 * time.Millisecond,
	}
}
