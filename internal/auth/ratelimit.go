package auth

import (
	"sync"
	"time"
)

// RateLimiter implements a token bucket per key (client address for logins).
// Keys get a bucket on first use; a zero limit disables limiting.
type RateLimiter struct {
	mu      sync.Mutex
	rpm     int
	buckets map[string]*tokenBucket
	now     func() time.Time
}

type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing rpm requests per minute per key
func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{
		rpm:     rpm,
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// Allow consumes one token for key and reports whether the request may proceed
func (r *RateLimiter) Allow(key string) bool {
	if r.rpm <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.buckets[key]
	if !exists {
		// Burst of ~10 seconds worth, at least 5 attempts
		maxTokens := float64(r.rpm) / 6
		if maxTokens < 5 {
			maxTokens = 5
		}
		bucket = &tokenBucket{
			tokens:     maxTokens,
			maxTokens:  maxTokens,
			refillRate: float64(r.rpm) / 60.0,
			lastRefill: now,
		}
		r.buckets[key] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * bucket.refillRate
	if bucket.tokens > bucket.maxTokens {
		bucket.tokens = bucket.maxTokens
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}

	return false
}

// Remaining returns the current token count for key, -1 when unlimited
func (r *RateLimiter) Remaining(key string) float64 {
	if r.rpm <= 0 {
		return -1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.buckets[key]
	if !exists {
		return -1
	}
	return bucket.tokens
}

// Prune drops buckets that have been idle for longer than idle
func (r *RateLimiter) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for key, bucket := range r.buckets {
		if bucket.lastRefill.Before(cutoff) {
			delete(r.buckets, key)
			removed++
		}
	}
	return removed
}
