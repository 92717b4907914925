// Package clock provides helpers for waiting on wall-clock time.
package clock

import (
	"context"
	"math/rand/v2"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Jitter spreads d uniformly over [d*(1-fraction), d*(1+fraction)] so that pollers started
// together drift apart. fraction is clamped to [0, 1].
func Jitter(d time.Duration, fraction float64) time.Duration {
	if d <= 0 || fraction <= 0 {
		return d
	}
	if fraction > 1 {
		fraction = 1
	}
	spread := time.Duration(float64(d) * fraction)
	if spread <= 0 {
		return d
	}
	return d - spread + rand.N(2*spread+1)
}
