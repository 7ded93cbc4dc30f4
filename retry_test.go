package throttle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want classification
	}{
		{"nil", nil, classSuccess},
		{"429", &APIError{Status: 429}, classRetryable},
		{"500", &APIError{Status: 500}, classRetryable},
		{"502", &APIError{Status: 502}, classRetryable},
		{"503", &APIError{Status: 503}, classRetryable},
		{"504", &APIError{Status: 504}, classRetryable},
		{"wrapped 429", fmt.Errorf("search failed: %w", &APIError{Status: 429}), classRetryable},
		{"timeout", timeoutError{}, classRetryable},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, classRetryable},
		{"conn reset", syscall.ECONNRESET, classRetryable},
		{"conn refused", syscall.ECONNREFUSED, classRetryable},
		{"400", &APIError{Status: 400}, classFatal},
		{"401", &APIError{Status: 401}, classFatal},
		{"403", &APIError{Status: 403}, classFatal},
		{"404", &APIError{Status: 404}, classFatal},
		{"application error", errors.New("playlist not found"), classFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestBackoff_JitterBounds(t *testing.T) {
	r := newRetryController(Config{
		MaxRetries:        10,
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
	})

	for attempt := range 10 {
		base := time.Duration(float64(time.Second) * pow(2.0, attempt))
		if base > 60*time.Second {
			base = 60 * time.Second
		}
		for range 50 {
			delay := r.backoff(attempt)
			assert.GreaterOrEqual(t, delay, time.Duration(1.10*float64(base)), "attempt %d", attempt)
			assert.LessOrEqual(t, delay, time.Duration(1.30*float64(base)), "attempt %d", attempt)
		}
	}
}

func TestBackoff_MonotonicUntilClamped(t *testing.T) {
	r := newRetryController(Config{
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
	})

	// Compare jitter-free lower bounds: each attempt's minimum delay never
	// shrinks, and clamps at max delay.
	prev := time.Duration(0)
	maxDelay := 60 * time.Second
	for attempt := range 12 {
		floor := time.Duration(1.10 * float64(time.Second) * pow(2.0, attempt))
		if ceiling := time.Duration(1.10 * float64(maxDelay)); floor > ceiling {
			floor = ceiling
		}
		assert.GreaterOrEqual(t, floor, prev)
		prev = floor

		delay := r.backoff(attempt)
		assert.LessOrEqual(t, delay, time.Duration(1.30*float64(maxDelay)), "clamp bound")
	}
}

func pow(base float64, exp int) float64 {
	out := 1.0
	for range exp {
		out *= base
	}
	return out
}

func TestRetryDelay_HonorsRetryAfterFor429(t *testing.T) {
	r := newRetryController(Config{
		MaxRetries:        5,
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
	})

	delay := r.retryDelay(&APIError{Status: 429, Hint: 7 * time.Second})
	assert.Equal(t, 7*time.Second, delay, "server hint must win over backoff")

	// Without a hint the computed backoff applies.
	delay = r.retryDelay(&APIError{Status: 429})
	assert.GreaterOrEqual(t, delay, 1100*time.Millisecond)
	assert.LessOrEqual(t, delay, 1300*time.Millisecond)

	// Hints on non-429 outcomes are ignored per policy.
	delay = r.retryDelay(&APIError{Status: 503, Hint: 45 * time.Second})
	assert.LessOrEqual(t, delay, 1300*time.Millisecond, "5xx failures use computed backoff")
}

func TestController_Exhaustion(t *testing.T) {
	r := newRetryController(Config{
		MaxRetries:        2,
		BaseDelay:         time.Millisecond,
		MaxDelay:          time.Second,
		BackoffMultiplier: 2.0,
	})

	failure := &APIError{Status: 503}

	_, retry := r.next(failure)
	require.True(t, retry)
	_, retry = r.next(failure)
	require.True(t, retry)

	_, retry = r.next(failure)
	assert.False(t, retry, "retry budget is spent after max retries")
	assert.Equal(t, 3, r.attempts(), "initial attempt plus two retries")
	assert.Same(t, failure, r.lastErr.(*APIError))
}

func TestController_ZeroRetries(t *testing.T) {
	r := newRetryController(Config{
		MaxRetries:        0,
		BaseDelay:         time.Millisecond,
		MaxDelay:          time.Second,
		BackoffMultiplier: 2.0,
	})

	_, retry := r.next(&APIError{Status: 503})
	assert.False(t, retry)
	assert.Equal(t, 1, r.attempts())
}

func TestClassify_ContextErrorsStayOutOfRetry(t *testing.T) {
	// Cancellation surfaces through the acquire path, never via classify;
	// a bare context error from the operation itself is treated as fatal.
	assert.Equal(t, classFatal, classify(context.Canceled))
}
