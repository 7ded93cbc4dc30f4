package slidingwindow

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidMaxRequests = errors.New("sliding window max requests must be positive")
	ErrInvalidWindow      = errors.New("sliding window length must be positive")
)

func NewInvalidMaxRequestsError(n int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidMaxRequests, n)
}

func NewInvalidWindowError(window time.Duration) error {
	return fmt.Errorf("%w, got %s", ErrInvalidWindow, window)
}
