// Package telemetry provides ready-made throttle.Observer implementations:
// structured logging with zap and Prometheus metrics. The core only emits
// events; formatting and routing live here.
package telemetry

import (
	"time"

	"go.uber.org/zap"
)

// Logger is an Observer that writes structured logs with zap.
type Logger struct {
	log *zap.Logger
}

// NewLogger creates a logging observer. A nil logger is replaced with
// zap.NewNop so the observer is always safe to install.
func NewLogger(log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log}
}

func (l *Logger) AdmissionWaited(key string, wait time.Duration) {
	l.log.Debug("admission wait incurred",
		zap.String("key", key),
		zap.Duration("wait", wait),
	)
}

func (l *Logger) RetryScheduled(key string, attempt int, delay time.Duration, err error) {
	l.log.Warn("retry scheduled",
		zap.String("key", key),
		zap.Int("attempt", attempt),
		zap.Duration("delay", delay),
		zap.Error(err),
	)
}

func (l *Logger) RetryExhausted(key string, attempts int, err error) {
	l.log.Error("retries exhausted",
		zap.String("key", key),
		zap.Int("attempts", attempts),
		zap.Error(err),
	)
}

func (l *Logger) FatalFailure(key string, err error) {
	l.log.Error("permanent failure",
		zap.String("key", key),
		zap.Error(err),
	)
}
