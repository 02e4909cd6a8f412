// Package ratelimiter implements a token bucket used to pace outbound
// requests against The Movie DB API.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter is the pacing contract used by API clients.
type RateLimiter interface {
	TakeToken() bool
	Wait()
}

// TokenBucket refills at a fixed per-second rate up to its capacity.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a bucket holding up to capacity tokens,
// refilled at refillRate tokens per second.
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}
	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: float64(refillRate),
		lastRefill: time.Now(),
	}
}

// TakeToken consumes a token if one is available.
func (tb *TokenBucket) TakeToken() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token becomes available.
func (tb *TokenBucket) Wait() {
	interval := time.Duration(float64(time.Second) / tb.refillRate)
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	for !tb.TakeToken() {
		time.Sleep(interval)
	}
}
