package ratelimit

import (
	"context"
	"time"
)

// Limiter paces outgoing requests and says how long to back off after a
// retryable failure.
type Limiter interface {
	Wait(ctx context.Context) error
	Backoff(attempt int) time.Duration
	MaxRetries() int
}

// Strategy selects a Limiter implementation.
type Strategy string

const (
	StrategyTokenBucket Strategy = "token_bucket"
	StrategyFixedDelay  Strategy = "fixed_delay"
)

// New builds the limiter named by cfg.Strategy. Unknown strategies get a token bucket.
func New(cfg Config) Limiter {
	cfg = withDefaults(cfg)
	if cfg.Strategy == StrategyFixedDelay {
		return NewFixedDelay(cfg)
	}
	return NewTokenBucket(cfg)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
