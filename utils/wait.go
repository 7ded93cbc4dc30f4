package utils

import (
	"context"
	"time"
)

// SleepContext blocks for delay or until ctx is cancelled, whichever comes
// first. Cancellation wins even for very short delays so that a caller
// shutdown never has to ride out a pending wait.
func SleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
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
