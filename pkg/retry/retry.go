// Package retry runs an operation again after a failure, with a fixed
// delay between attempts. Every failure is treated the same: there is
// no classification by error kind, no jitter and no backoff growth.
// After the last attempt the final error is returned unchanged.
package retry

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
)

// Do executes op up to attempts times, sleeping delay between failed
// attempts. It returns the first successful result, or the error of
// the final attempt once attempts are exhausted. A cancelled context
// cuts the wait short and returns ctx.Err().
func Do[T any](ctx context.Context, attempts int, delay time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = DefaultAttempts
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var out T
		out, err = op(ctx)
		if err == nil {
			return out, nil
		}

		slog.Warn("operation failed", "attempt", attempt, "max_attempts", attempts, "error", err)

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, err
}
