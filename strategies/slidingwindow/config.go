package slidingwindow

import "time"

type Config struct {
	MaxRequests int           // Ceiling on requests inside the window
	Window      time.Duration // Rolling interval length
}

func (c Config) Validate() error {
	if c.MaxRequests <= 0 {
		return NewInvalidMaxRequestsError(c.MaxRequests)
	}
	if c.Window <= 0 {
		return NewInvalidWindowError(c.Window)
	}
	return nil
}
