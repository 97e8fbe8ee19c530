package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket allows short bursts and refills at a steady rate.
type TokenBucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
	cfg    Config
	now    func() time.Time
}

// NewTokenBucket starts with a full bucket.
func NewTokenBucket(cfg Config) *TokenBucket {
	cfg = withDefaults(cfg)
	return &TokenBucket{tokens: float64(cfg.Burst), last: time.Now(), cfg: cfg, now: time.Now}
}

// Wait takes one token, sleeping until one is available.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		wait := tb.take()
		if wait == 0 {
			return nil
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// take consumes a token and returns zero, or returns how long until one is due.
func (tb *TokenBucket) take() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	if elapsed := now.Sub(tb.last); elapsed > 0 {
		tb.tokens += elapsed.Seconds() * tb.cfg.RequestsPerSec
		if limit := float64(tb.cfg.Burst); tb.tokens > limit {
			tb.tokens = limit
		}
		tb.last = now
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return 0
	}
	return time.Duration((1-tb.tokens)/tb.cfg.RequestsPerSec*float64(time.Second)) + time.Millisecond
}

func (tb *TokenBucket) Backoff(attempt int) time.Duration {
	return Backoff(attempt, tb.cfg)
}

func (tb *TokenBucket) MaxRetries() int {
	return tb.cfg.MaxRetries
}
