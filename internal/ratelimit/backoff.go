package ratelimit

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Backoff is exponential with +/-25% jitter, capped at cfg.MaxBackoff.
// Attempt numbering starts at 1.
func Backoff(attempt int, cfg Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	base := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffMultiplier, float64(attempt-1))
	base = math.Min(base, float64(cfg.MaxBackoff))

	d := base * (1 + 0.25*(2*rand.Float64()-1))
	return time.Duration(math.Min(d, float64(cfg.MaxBackoff)))
}

// RetryableError marks a failure worth another attempt.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err so Do will retry it.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Do calls fn after waiting on lim, retrying RetryableError failures up to
// lim.MaxRetries times with backoff. Other errors are returned at once.
func Do(ctx context.Context, lim Limiter, fn func(ctx context.Context) error) error {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, lim.Backoff(attempt)); err != nil {
				return err
			}
		}
		if err := lim.Wait(ctx); err != nil {
			return err
		}

		err := fn(ctx)
		var re *RetryableError
		if err == nil || !errors.As(err, &re) || attempt >= lim.MaxRetries() {
			return err
		}
	}
}
