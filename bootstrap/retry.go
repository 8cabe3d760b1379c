package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/zerosource"
)

// DefaultRetryDelays returns the backoff delays for model calls: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retry calls fn until it succeeds, the delays are exhausted, or the error is
// not retryable. Only EINTERNAL failures are retried; invalid input and
// missing configuration fail immediately.
// The logger, if provided, receives one record per retry attempt.
func Retry[T any](ctx context.Context, op string, fn func(ctx context.Context) (T, error), logger *slog.Logger, delays []time.Duration) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if zerosource.ErrorCode(err) != zerosource.EINTERNAL {
			return zero, err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("retry", "op", op, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
