package httpserver

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-client sliding window: at most limit requests
// within the trailing window. Timestamps outside the window are evicted on
// each check.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	nowFn   func() time.Time
	clients map[string][]time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		nowFn:   time.Now,
		clients: make(map[string][]time.Time),
	}
}

// Allow records a request for the client and reports whether it is within
// the limit. A denied request is not recorded.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFn()
	cutoff := now.Add(-rl.window)

	stamps := rl.clients[client]
	keep := 0
	for _, ts := range stamps {
		if ts.After(cutoff) {
			stamps[keep] = ts
			keep++
		}
	}
	stamps = stamps[:keep]

	if len(stamps) >= rl.limit {
		rl.clients[client] = stamps
		return false
	}
	rl.clients[client] = append(stamps, now)
	return true
}
