package throttle

import (
	"time"
)

// Option is a functional option for configuring a Throttler
type Option func(*Config) error

// WithRequestsPerSecond sets the steady refill rate of the token bucket
func WithRequestsPerSecond(rate float64) Option {
	return func(config *Config) error {
		config.RequestsPerSecond = rate
		return nil
	}
}

// WithRequestsPerMinute sets the rolling per-minute ceiling
func WithRequestsPerMinute(n int) Option {
	return func(config *Config) error {
		config.RequestsPerMinute = n
		return nil
	}
}

// WithBurstSize sets the token bucket capacity
func WithBurstSize(n int) Option {
	return func(config *Config) error {
		config.BurstSize = n
		return nil
	}
}

// WithMaxRetries sets how many retries may follow the initial attempt
func WithMaxRetries(n int) Option {
	return func(config *Config) error {
		config.MaxRetries = n
		return nil
	}
}

// WithBaseDelay sets the first backoff step
func WithBaseDelay(d time.Duration) Option {
	return func(config *Config) error {
		config.BaseDelay = d
		return nil
	}
}

// WithMaxDelay sets the backoff clamp
func WithMaxDelay(d time.Duration) Option {
	return func(config *Config) error {
		config.MaxDelay = d
		return nil
	}
}

// WithBackoffMultiplier sets the exponential growth factor
func WithBackoffMultiplier(m float64) Option {
	return func(config *Config) error {
		config.BackoffMultiplier = m
		return nil
	}
}

// WithKeyFunc installs a per-call partition key extractor. Calls whose
// extractor returns an empty or invalid key share the default partition.
func WithKeyFunc(f KeyFunc) Option {
	return func(config *Config) error {
		config.KeyFunc = f
		return nil
	}
}

// WithObserver installs an event sink for admission waits, scheduled
// retries, exhaustion, and permanent failures.
func WithObserver(o Observer) Option {
	return func(config *Config) error {
		if o == nil {
			return ErrNilObserver
		}
		config.Observer = o
		return nil
	}
}

// WithConservativeDefaults applies settings suited to third-party APIs
// whose rate limits are undocumented: half a request per second, 30 per
// minute, and a burst of 5.
func WithConservativeDefaults() Option {
	return func(config *Config) error {
		config.RequestsPerSecond = 0.5
		config.RequestsPerMinute = 30
		config.BurstSize = 5
		config.MaxRetries = 5
		return nil
	}
}
