package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tickd/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRemindersSent(tier string, source string)
	IncJobSkips(reason string)
	IncIshaLookups(outcome string)
	ObservePersistenceDuration(duration time.Duration)
	SetStreak(days int)
	SetTodayTicked(ticked bool)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	remindersSent       *prometheus.CounterVec
	jobSkips            *prometheus.CounterVec
	ishaLookups         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	streakDays          prometheus.Gauge
	todayTicked         prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRemindersSent(tier string, source string) {
	m.remindersSent.WithLabelValues(tier, source).Inc()
}

func (m *MetricsProvider) IncJobSkips(reason string) {
	m.jobSkips.WithLabelValues(reason).Inc()
}

func (m *MetricsProvider) IncIshaLookups(outcome string) {
	m.ishaLookups.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetStreak(days int) {
	m.streakDays.Set(float64(days))
}

func (m *MetricsProvider) SetTodayTicked(ticked bool) {
	if ticked {
		m.todayTicked.Set(1)
	} else {
		m.todayTicked.Set(0)
	}
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tickd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tickd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tickd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tickd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		remindersSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tickd_reminders_sent_total",
			Help: "Total number of reminders delivered, by cadence tier and trigger source",
		}, []string{"tier", "source"}),

		jobSkips: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tickd_job_skips_total",
			Help: "Total number of notify job runs that skipped sending",
		}, []string{"reason"}),

		ishaLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tickd_isha_lookups_total",
			Help: "Total number of isha time lookups, by outcome",
		}, []string{"outcome"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tickd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		streakDays: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tickd_streak_days",
			Help: "Current streak length in days",
		}),

		todayTicked: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tickd_today_ticked",
			Help: "Whether the current cycle has been ticked (1) or not (0)",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRemindersSent(_ string, _ string)              {}
func (n *noopMetrics) IncJobSkips(_ string)                             {}
func (n *noopMetrics) IncIshaLookups(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetStreak(_ int)                                  {}
func (n *noopMetrics) SetTodayTicked(_ bool)                            {}
