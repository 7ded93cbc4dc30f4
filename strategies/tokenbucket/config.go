package tokenbucket

type Config struct {
	BurstSize  int     // Maximum tokens the bucket can hold
	RefillRate float64 // Tokens to add per second
}

func (c Config) Validate() error {
	if c.BurstSize <= 0 {
		return NewInvalidBurstSizeError(c.BurstSize)
	}
	if c.RefillRate <= 0 {
		return NewInvalidRefillRateError(c.RefillRate)
	}
	return nil
}
