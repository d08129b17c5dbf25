package service

import (
	"context"
	"time"
)

// DefaultLatency is the emulated round trip used outside tests.
const DefaultLatency = time.Second

// NoLatency returns immediately.
type NoLatency struct{}

func (NoLatency) Wait(context.Context) error { return nil }

// FixedLatency waits Delay or until ctx is done.
type FixedLatency struct {
	Delay time.Duration
}

func (l FixedLatency) Wait(ctx context.Context) error {
	if l.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(l.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
