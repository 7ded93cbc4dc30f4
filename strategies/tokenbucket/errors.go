package tokenbucket

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBurstSize  = errors.New("token bucket burst size must be positive")
	ErrInvalidRefillRate = errors.New("token bucket refill rate must be positive")
)

func NewInvalidBurstSizeError(size int) error {
	return fmt.Errorf("%w, got %d", ErrInvalidBurstSize, size)
}

func NewInvalidRefillRateError(rate float64) error {
	return fmt.Errorf("%w, got %g", ErrInvalidRefillRate, rate)
}
