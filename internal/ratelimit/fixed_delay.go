package ratelimit

import (
	"context"
	"sync"
	"time"
)

// FixedDelay spaces requests at least cfg.FixedDelay apart.
type FixedDelay struct {
	mu   sync.Mutex
	next time.Time
	cfg  Config
	now  func() time.Time
}

func NewFixedDelay(cfg Config) *FixedDelay {
	cfg = withDefaults(cfg)
	return &FixedDelay{cfg: cfg, now: time.Now}
}

// Wait claims the next slot and sleeps until it starts.
func (fd *FixedDelay) Wait(ctx context.Context) error {
	fd.mu.Lock()
	now := fd.now()
	slot := fd.next
	if slot.Before(now) {
		slot = now
	}
	fd.next = slot.Add(fd.cfg.FixedDelay)
	fd.mu.Unlock()

	return sleep(ctx, slot.Sub(now))
}

func (fd *FixedDelay) Backoff(attempt int) time.Duration {
	return Backoff(attempt, fd.cfg)
}

func (fd *FixedDelay) MaxRetries() int {
	return fd.cfg.MaxRetries
}
