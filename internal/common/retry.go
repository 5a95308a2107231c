package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/triptally/triptally/internal/service"
)

// ErrMaxRetries indicates that all retry attempts have been exhausted.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryableError marks whether a wrapped error is worth retrying.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// WithRetry runs op, retrying failures with exponential backoff. An error
// wrapped in a *RetryableError with Retryable=false aborts immediately;
// context cancellation aborts between attempts.
func WithRetry(ctx context.Context, op func() error, opts service.RetryOptions) error {
	opts = normalizeRetryOptions(opts)

	var lastErr error
	delay := opts.InitialDelay

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("retrying operation",
				"attempt", attempt,
				"max_attempts", opts.MaxAttempts,
				"delay", delay,
				"error", lastErr)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = nextDelay(delay, opts)
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}

		var retryable *RetryableError
		if errors.As(lastErr, &retryable) && !retryable.Retryable {
			return lastErr
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, opts.MaxAttempts, lastErr)
}

func normalizeRetryOptions(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return opts
}

func nextDelay(current time.Duration, opts service.RetryOptions) time.Duration {
	next := time.Duration(float64(current) * opts.Multiplier)
	if next > opts.MaxDelay {
		return opts.MaxDelay
	}
	return next
}
