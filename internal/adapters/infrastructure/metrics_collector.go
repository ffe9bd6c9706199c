package infrastructure

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weatherlookup.app/internal/ports"
)

// MetricsCollectorAdapter records lookup and provider metrics in Prometheus
// and keeps a small in-process summary for the JSON metrics endpoint.
type MetricsCollectorAdapter struct {
	lookups          *prometheus.CounterVec
	lookupDuration   *prometheus.HistogramVec
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	sessionOps       *prometheus.CounterVec

	mu        sync.RWMutex
	successes int64
	failures  int64
	lastAt    time.Time
}

// NewMetricsCollectorAdapter registers the collectors with reg
func NewMetricsCollectorAdapter(reg prometheus.Registerer) *MetricsCollectorAdapter {
	factory := promauto.With(reg)

	return &MetricsCollectorAdapter{
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_lookups_total",
				Help: "The total number of weather lookups by outcome",
			},
			[]string{"outcome"},
		),
		lookupDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weather_lookup_duration_seconds",
				Help:    "Weather lookup duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		providerRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_provider_requests_total",
				Help: "The total number of forecast provider requests",
			},
			[]string{"provider", "result"},
		),
		providerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weather_provider_request_duration_seconds",
				Help:    "Forecast provider request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		sessionOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_session_operations_total",
				Help: "The total number of session store operations",
			},
			[]string{"store", "operation", "result"},
		),
	}
}

// RecordLookup implements ports.LookupMetrics
func (m *MetricsCollectorAdapter) RecordLookup(outcome ports.LookupOutcome, duration time.Duration) {
	m.lookups.WithLabelValues(string(outcome)).Inc()
	m.lookupDuration.WithLabelValues(string(outcome)).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if outcome == ports.LookupOutcomeSuccess {
		m.successes++
	} else {
		m.failures++
	}
	m.lastAt = time.Now()
}

// RecordProviderRequest implements ports.ProviderMetrics
func (m *MetricsCollectorAdapter) RecordProviderRequest(provider string, success bool, duration time.Duration) {
	result := "error"
	if success {
		result = "ok"
	}
	m.providerRequests.WithLabelValues(provider, result).Inc()
	m.providerDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordSessionOperation implements ports.SessionMetrics
func (m *MetricsCollectorAdapter) RecordSessionOperation(store, operation string, success bool) {
	result := "error"
	if success {
		result = "ok"
	}
	m.sessionOps.WithLabelValues(store, operation, result).Inc()
}

// GetMetrics returns a summary of lookups since start
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.successes + m.failures
	successRatio := float64(0)
	if total > 0 {
		successRatio = float64(m.successes) / float64(total)
	}

	lookups := map[string]interface{}{
		"total":         total,
		"successes":     m.successes,
		"failures":      m.failures,
		"success_ratio": successRatio,
	}
	if !m.lastAt.IsZero() {
		lookups["last_lookup"] = m.lastAt
	}

	return map[string]interface{}{"lookups": lookups}, nil
}
