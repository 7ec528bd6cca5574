// Package ratelimit provides a keyed token-bucket rate limiter.
// The catalog client uses it to throttle outbound requests per endpoint
// group, so a burst of UI activity cannot flood the remote API.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedLimiter manages per-key rate limiting.
// Each unique key gets its own independent token bucket.
type KeyedLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a keyed rate limiter.
// rps: requests per second allowed per key.
// burst: tokens available immediately per key.
func New(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request for the given key may proceed right now.
// Non-blocking.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.limiter(key).Allow()
}

// Wait blocks until a request for the given key is allowed or ctx is canceled.
// Outbound catalog requests go through this so they respect the budget
// instead of failing.
func (kl *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return kl.limiter(key).Wait(ctx)
}

// limiter returns the bucket for a key, creating it on first use.
func (kl *KeyedLimiter) limiter(key string) *rate.Limiter {
	kl.mu.RLock()
	lim, ok := kl.limiters[key]
	kl.mu.RUnlock()
	if ok {
		return lim
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()

	// Re-check: another goroutine may have created it between locks.
	if lim, ok = kl.limiters[key]; ok {
		return lim
	}

	lim = rate.NewLimiter(kl.limit, kl.burst)
	kl.limiters[key] = lim
	return lim
}
