package docsearch

import (
	"context"
	"sync"
	"time"
)

// Limiter is a token bucket that allows at most rpm requests per minute
// against the documentation site.
type Limiter struct {
	rpm      int
	mu       sync.Mutex
	tokens   int
	lastFill time.Time
	now      func() time.Time
	poll     time.Duration
}

// NewLimiter returns a full bucket. rpm <= 0 disables limiting.
func NewLimiter(rpm int) *Limiter {
	return &Limiter{
		rpm:      rpm,
		tokens:   rpm,
		lastFill: time.Now(),
		now:      time.Now,
		poll:     100 * time.Millisecond,
	}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.rpm <= 0 {
		return nil
	}
	for {
		if l.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.poll):
		}
	}
}

func (l *Limiter) take() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	refill := int(now.Sub(l.lastFill).Seconds() * float64(l.rpm) / 60.0)
	if refill > 0 {
		l.tokens = min(l.tokens+refill, l.rpm)
		l.lastFill = now
	}
	if l.tokens > 0 {
		l.tokens--
		return true
	}
	return false
}
