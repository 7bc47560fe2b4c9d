package deezer

import (
	"context"
	"sync"
	"time"
)

// rateLimiter spaces requests evenly; the API counts requests per token over a short window.
type rateLimiter struct {
	mu          sync.Mutex
	interval    time.Duration
	lastRequest time.Time
}

func newRateLimiter(requestsPerSecond int) *rateLimiter {
	if requestsPerSecond <= 0 {
		return &rateLimiter{}
	}
	return &rateLimiter{
		interval: time.Second / time.Duration(requestsPerSecond),
	}
}

// Wait blocks until a request can be made
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.interval > 0 {
		nextAllowed := r.lastRequest.Add(r.interval)
		if now := time.Now(); now.Before(nextAllowed) {
			select {
			case <-time.After(nextAllowed.Sub(now)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	r.lastRequest = time.Now()
	return nil
}
