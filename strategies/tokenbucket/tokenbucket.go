package tokenbucket

import (
	"math"
	"time"

	"github.com/ajiwo/throttle/strategies"
)

// Bucket implements the token bucket rate limiting algorithm.
//
// Tokens refill lazily at each access based on the time elapsed since the
// last refill, so no background goroutine runs. The count never drops below
// zero and never exceeds the configured burst size.
//
// A Bucket is not safe for concurrent use on its own. The owner guards each
// instance with its partition lock so that consumption and refill stay
// atomic and admission across multiple algorithms commits as one unit.
type Bucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

// New creates a full bucket. The config must have been validated.
func New(config Config, now time.Time) *Bucket {
	return &Bucket{
		capacity:   float64(config.BurstSize),
		tokens:     float64(config.BurstSize),
		refillRate: config.RefillRate,
		lastRefill: now,
	}
}

// refill credits tokens for the time elapsed since the last refill.
func (b *Bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens = math.Min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// TryConsume refills the bucket and deducts n tokens if available.
// When fewer than n tokens are available it reports false and leaves the
// count untouched beyond the refill.
func (b *Bucket) TryConsume(now time.Time, n float64) bool {
	b.refill(now)
	if b.tokens >= n {
		b.tokens -= n
		return true
	}
	return false
}

// Refund returns n previously consumed tokens, clamped at capacity.
// Used to roll back a consumption that could not be committed.
func (b *Bucket) Refund(now time.Time, n float64) {
	b.refill(now)
	b.tokens = math.Min(b.capacity, b.tokens+n)
}

// TimeUntilAvailable reports the wait needed for n tokens to accumulate at
// the refill rate, or zero if they are already available.
func (b *Bucket) TimeUntilAvailable(now time.Time, n float64) time.Duration {
	b.refill(now)
	if b.tokens >= n {
		return 0
	}
	missing := n - b.tokens
	return time.Duration(missing / b.refillRate * float64(time.Second))
}

// Peek reports the current outlook without consuming tokens.
func (b *Bucket) Peek(now time.Time) strategies.Result {
	b.refill(now)
	return strategies.Result{
		Allowed:    b.tokens >= 1.0,
		Remaining:  max(int(b.tokens), 0),
		RetryAfter: b.TimeUntilAvailable(now, 1),
	}
}

// Reset refills the bucket to capacity.
func (b *Bucket) Reset(now time.Time) {
	b.tokens = b.capacity
	b.lastRefill = now
}
