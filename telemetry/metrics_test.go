package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.AdmissionWaited("client-a", 100*time.Millisecond)
	metrics.AdmissionWaited("client-a", 300*time.Millisecond)
	metrics.RetryScheduled("client-a", 1, time.Second, errors.New("status 429"))
	metrics.RetryExhausted("client-b", 6, errors.New("status 503"))
	metrics.FatalFailure("client-b", errors.New("status 403"))

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.admissionWaits.WithLabelValues("client-a")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.retries.WithLabelValues("client-a")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.retriesExhausted.WithLabelValues("client-b")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.fatalFailures.WithLabelValues("client-b")), 0)
}

func TestMetrics_WaitHistogram(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.AdmissionWaited("client-a", 50*time.Millisecond)
	metrics.AdmissionWaited("client-a", 2*time.Second)

	count, err := testutil.GatherAndCount(registry, "throttle_admission_wait_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one labeled series should exist")
}

func TestMetrics_RegistersAllCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(registry)

	families, err := registry.Gather()
	require.NoError(t, err)
	// CounterVec/HistogramVec families appear only once a label set is
	// observed, so a fresh registry gathers none and, crucially, the
	// registrations above did not collide.
	assert.Empty(t, families)
}
