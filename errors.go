package throttle

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidMaxRetries        = errors.New("max retries cannot be negative")
	ErrInvalidBaseDelay         = errors.New("base delay must be positive")
	ErrInvalidMaxDelay          = errors.New("max delay cannot be smaller than base delay")
	ErrInvalidBackoffMultiplier = errors.New("backoff multiplier must be at least 1")
	ErrNilObserver              = errors.New("observer cannot be nil")

	// ErrWaitCancelled marks failures caused by the caller's context being
	// cancelled while a wait was pending.
	ErrWaitCancelled = errors.New("throttle wait cancelled")
)

func NewInvalidMaxRetriesError(n int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidMaxRetries, n)
}

func NewInvalidBaseDelayError(d time.Duration) error {
	return fmt.Errorf("%w, got %s", ErrInvalidBaseDelay, d)
}

func NewInvalidMaxDelayError(maxDelay, baseDelay time.Duration) error {
	return fmt.Errorf("%w, got max %s with base %s", ErrInvalidMaxDelay, maxDelay, baseDelay)
}

func NewInvalidBackoffMultiplierError(m float64) error {
	return fmt.Errorf("%w, got %g", ErrInvalidBackoffMultiplier, m)
}

// newWaitCancelledError wraps a context error so callers can match either
// ErrWaitCancelled or the underlying context.Canceled/DeadlineExceeded.
func newWaitCancelledError(err error) error {
	return fmt.Errorf("%w: %w", ErrWaitCancelled, err)
}

// HTTPStatusError is implemented by failures that carry the HTTP status of
// the unsuccessful response. The status drives retry classification.
type HTTPStatusError interface {
	error
	HTTPStatus() int
}

// RetryAfterHinter is implemented by failures that carry a server-provided
// wait hint, typically from a Retry-After header.
type RetryAfterHinter interface {
	RetryAfter() (time.Duration, bool)
}

// APIError is a ready-made failure carrier for transport collaborators.
// It exposes the HTTP status and optional Retry-After hint the retry
// policy needs, while keeping the underlying cause reachable via Unwrap.
type APIError struct {
	Status int           // HTTP status of the failed response
	Hint   time.Duration // server-provided wait, zero when absent
	Err    error         // underlying cause, may be nil
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) HTTPStatus() int { return e.Status }

func (e *APIError) RetryAfter() (time.Duration, bool) {
	return e.Hint, e.Hint > 0
}

// ParseRetryAfter parses a Retry-After header value, accepting both the
// delta-seconds and the HTTP-date form. It reports false for values it
// cannot interpret, leaving the caller to fall back to computed backoff.
func ParseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	if at, err := http.ParseTime(value); err == nil {
		wait := time.Until(at)
		if wait < 0 {
			wait = 0
		}
		return wait, true
	}

	return 0, false
}
