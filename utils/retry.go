package utils

import (
	"context"
	"fmt"
	"time"
)

// Retry runs fn up to maxRetries times, stopping at the first nil error.
// Between attempts it backs off exponentially (base, 2*base, 4*base...).
// Errors for which permanent returns true are returned at once.
func Retry(ctx context.Context, maxRetries int, base time.Duration, permanent func(error) bool, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if permanent != nil && permanent(lastErr) {
			return lastErr
		}

		if attempt < maxRetries {
			wait := base * time.Duration(1<<uint(attempt-1))
			Warn("Attempt %d/%d failed: %v, retrying in %v", attempt, maxRetries, lastErr, wait)
			if err := Sleep(ctx, wait); err != nil {
				return fmt.Errorf("retry interrupted: %w", err)
			}
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}
