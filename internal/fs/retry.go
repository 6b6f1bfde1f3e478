package fs

import (
	"context"
	"fmt"
	"time"
)

// Backoff parameters for transient filesystem errors.
var (
	maxAttempts = 5
	baseDelay   = 100 * time.Millisecond
)

// retry runs fn until it succeeds, fails permanently, or attempts run out.
// The delay doubles after every transient failure.
func retry(ctx context.Context, opName string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransient(err) {
			return fmt.Errorf("%s failed permanently: %w", opName, err)
		}
		if attempt == maxAttempts {
			break
		}

		t := time.NewTimer(baseDelay << (attempt - 1))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", opName, maxAttempts, lastErr)
}
