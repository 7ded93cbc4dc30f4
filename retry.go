package throttle

import (
	"errors"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"
)

// classification is the retry policy's verdict on one attempt outcome.
type classification int

const (
	classSuccess classification = iota
	classRetryable
	classFatal
)

// classify maps an attempt outcome to the retry policy:
// 429 and 500/502/503/504 responses and network-level failures are
// transient; every other failure propagates immediately.
func classify(err error) classification {
	if err == nil {
		return classSuccess
	}

	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.HTTPStatus() {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return classRetryable
		default:
			return classFatal
		}
	}

	if isNetworkError(err) {
		return classRetryable
	}

	return classFatal
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}

// retryController drives one wrapped call through its attempt loop.
// It is created fresh per call and discarded once the call resolves.
type retryController struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	multiplier float64

	attempt int   // failed attempts recorded so far
	lastErr error // most recent failure
}

func newRetryController(config Config) *retryController {
	return &retryController{
		maxRetries: config.MaxRetries,
		baseDelay:  config.BaseDelay,
		maxDelay:   config.MaxDelay,
		multiplier: config.BackoffMultiplier,
	}
}

// next records a retryable failure and reports whether another attempt may
// run and how long to wait first. Once the retry budget is spent it
// reports false and the last failure propagates to the caller.
func (r *retryController) next(err error) (time.Duration, bool) {
	r.lastErr = err
	if r.attempt >= r.maxRetries {
		return 0, false
	}
	delay := r.retryDelay(err)
	r.attempt++
	return delay, true
}

// attempts counts the initial attempt plus every recorded retry.
func (r *retryController) attempts() int {
	return r.attempt + 1
}

// retryDelay prefers the server's Retry-After hint on 429 responses and
// falls back to computed backoff everywhere else.
func (r *retryController) retryDelay(err error) time.Duration {
	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.HTTPStatus() == http.StatusTooManyRequests {
		var hinter RetryAfterHinter
		if errors.As(err, &hinter) {
			if hint, ok := hinter.RetryAfter(); ok {
				return hint
			}
		}
	}
	return r.backoff(r.attempt)
}

// backoff computes min(base * multiplier^attempt, max) and adds jitter
// uniformly sampled from [0.10, 0.30] of the delay to keep synchronized
// retry storms apart.
func (r *retryController) backoff(attempt int) time.Duration {
	delay := time.Duration(float64(r.baseDelay) * math.Pow(r.multiplier, float64(attempt)))
	if delay <= 0 || delay > r.maxDelay {
		delay = r.maxDelay
	}
	jitter := time.Duration((0.10 + 0.20*rand.Float64()) * float64(delay))
	return delay + jitter
}
