package utils

import (
	"context"
	"math/rand"
	"time"
)

// DelayPolicy decides how long to pause between two page fetches.
type DelayPolicy interface {
	Wait(ctx context.Context) error
}

// RandomDelay sleeps a uniformly random duration in [Min, Max].
// Fixed gaps between requests form an obvious pattern; random ones do not.
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

func NewRandomDelay(min, max time.Duration) RandomDelay {
	if max < min {
		min, max = max, min
	}
	return RandomDelay{Min: min, Max: max}
}

// Next picks the duration of the next pause without sleeping.
func (d RandomDelay) Next() time.Duration {
	diff := d.Max - d.Min
	if diff <= 0 {
		return d.Min
	}
	return d.Min + time.Duration(rand.Int63n(int64(diff)+1))
}

// Wait sleeps for Next() or until ctx is done.
func (d RandomDelay) Wait(ctx context.Context) error {
	return Sleep(ctx, d.Next())
}

// NoDelay never waits. Tests use it to keep pagination deterministic.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Sleep pauses for d, returning early with ctx.Err() if ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
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
