package throttle

import (
	"context"
	"time"

	"github.com/ajiwo/throttle/strategies/slidingwindow"
	"github.com/ajiwo/throttle/strategies/tokenbucket"
)

// DefaultKey is the partition all calls share when no key function is
// configured or when key extraction yields nothing.
const DefaultKey = "default"

// windowLength is the sliding window interval the per-minute ceiling
// applies to.
const windowLength = time.Minute

// KeyFunc derives the rate-limit partition key for one call from its
// context. An empty result maps to DefaultKey.
type KeyFunc func(ctx context.Context) string

// Config holds the immutable settings of a Throttler.
type Config struct {
	RequestsPerSecond float64       // token bucket refill rate
	RequestsPerMinute int           // sliding window ceiling
	BurstSize         int           // token bucket capacity
	MaxRetries        int           // retries allowed after the initial attempt
	BaseDelay         time.Duration // first backoff step
	MaxDelay          time.Duration // backoff clamp
	BackoffMultiplier float64       // exponential growth factor
	KeyFunc           KeyFunc       // optional per-call key extraction
	Observer          Observer      // optional event sink
}

// DefaultConfig returns the baseline settings: 1 request per second,
// 60 per minute, burst of 10, and up to 5 retries backing off from
// 1s to 60s with a 2x multiplier.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 1.0,
		RequestsPerMinute: 60,
		BurstSize:         10,
		MaxRetries:        5,
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Validate validates the entire configuration. It fails fast at
// construction time, before any call is throttled.
func (c Config) Validate() error {
	if err := c.bucketConfig().Validate(); err != nil {
		return err
	}
	if err := c.windowConfig().Validate(); err != nil {
		return err
	}
	if c.MaxRetries < 0 {
		return NewInvalidMaxRetriesError(c.MaxRetries)
	}
	if c.BaseDelay <= 0 {
		return NewInvalidBaseDelayError(c.BaseDelay)
	}
	if c.MaxDelay < c.BaseDelay {
		return NewInvalidMaxDelayError(c.MaxDelay, c.BaseDelay)
	}
	if c.BackoffMultiplier < 1 {
		return NewInvalidBackoffMultiplierError(c.BackoffMultiplier)
	}
	return nil
}

func (c Config) bucketConfig() tokenbucket.Config {
	return tokenbucket.Config{
		BurstSize:  c.BurstSize,
		RefillRate: c.RequestsPerSecond,
	}
}

func (c Config) windowConfig() slidingwindow.Config {
	return slidingwindow.Config{
		MaxRequests: c.RequestsPerMinute,
		Window:      windowLength,
	}
}
