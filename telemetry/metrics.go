package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is an Observer that exports throttling activity as Prometheus
// metrics, labeled by partition key.
type Metrics struct {
	admissionWaits   *prometheus.CounterVec
	waitDuration     *prometheus.HistogramVec
	retries          *prometheus.CounterVec
	retriesExhausted *prometheus.CounterVec
	fatalFailures    *prometheus.CounterVec
}

// NewMetrics creates a metrics observer registered on reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		admissionWaits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "throttle_admission_waits_total",
				Help: "Total number of calls that blocked before admission",
			},
			[]string{"key"},
		),

		waitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "throttle_admission_wait_seconds",
				Help:    "Time calls spent blocked before admission",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~32s
			},
			[]string{"key"},
		),

		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "throttle_retries_total",
				Help: "Total number of retries scheduled for transient failures",
			},
			[]string{"key"},
		),

		retriesExhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "throttle_retries_exhausted_total",
				Help: "Total number of calls that failed after spending the retry budget",
			},
			[]string{"key"},
		),

		fatalFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "throttle_fatal_failures_total",
				Help: "Total number of non-retryable failures",
			},
			[]string{"key"},
		),
	}
}

func (m *Metrics) AdmissionWaited(key string, wait time.Duration) {
	m.admissionWaits.WithLabelValues(key).Inc()
	m.waitDuration.WithLabelValues(key).Observe(wait.Seconds())
}

func (m *Metrics) RetryScheduled(key string, attempt int, delay time.Duration, err error) {
	m.retries.WithLabelValues(key).Inc()
}

func (m *Metrics) RetryExhausted(key string, attempts int, err error) {
	m.retriesExhausted.WithLabelValues(key).Inc()
}

func (m *Metrics) FatalFailure(key string, err error) {
	m.fatalFailures.WithLabelValues(key).Inc()
}
