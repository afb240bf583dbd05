package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"tickd/internal/structures"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/state", 200)
	m.ObserveRequestDuration("/state", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncRemindersSent("urgent", "local")
	m.IncJobSkips("Before Isha")
	m.IncIshaLookups("fallback")
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetStreak(4)
	m.SetTodayTicked(true)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)

	// These should not panic
	m.IncRequestsTotal("/api/tick", 200)
	m.IncRequestsTotal("/api/tick", 500)
	m.ObserveRequestDuration("/api/tick", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncRemindersSent("high", "cron")
	m.IncJobSkips("Already ticked today")
	m.IncIshaLookups("api")
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetStreak(12)
	m.SetTodayTicked(false)
}

func TestHttpStatusBucket(t *testing.T) {
	assert.Equal(t, "1xx", httpStatusBucket(101))
	assert.Equal(t, "2xx", httpStatusBucket(200))
	assert.Equal(t, "3xx", httpStatusBucket(301))
	assert.Equal(t, "4xx", httpStatusBucket(401))
	assert.Equal(t, "5xx", httpStatusBucket(503))
}
