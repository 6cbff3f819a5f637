package utils

import (
	"context"
	"fmt"
	"time"
)

// after is swapped in tests to skip real waiting.
var after = time.After

// WaitFor pauses a retry loop for d. It returns ctx.Err() if ctx ends first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-after(d):
		return nil
	}
}

// Retry calls fn up to attempts times, waiting step*n after the n-th failure.
func Retry[T any](ctx context.Context, attempts int, step time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if attempts <= 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		if err := WaitFor(ctx, step*time.Duration(i+1)); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
