package infrastructure

import (
	"context"
	"time"

	"weatherlookup.app/internal/ports"
)

const healthCheckTimeout = 2 * time.Second

// SessionStoreHealthChecker pings the session store
type SessionStoreHealthChecker struct {
	store ports.SessionStore
}

// NewSessionStoreHealthChecker creates a new session store health checker
func NewSessionStoreHealthChecker(store ports.SessionStore) *SessionStoreHealthChecker {
	return &SessionStoreHealthChecker{store: store}
}

// Check verifies the session store answers a ping
func (s *SessionStoreHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "sessionStore",
		Status:    "healthy",
		Details:   map[string]interface{}{},
	}

	if s.store == nil {
		status.Status = "unhealthy"
		status.Error = "session store is not configured"
		return status
	}
	status.Details["type"] = s.store.Name()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	started := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	}
	status.Details["latency_ms"] = time.Since(started).Milliseconds()
	return status
}

// WeatherAPIHealthChecker reports the forecast provider configuration.
// It does not call the provider, so health probes never spend API quota.
type WeatherAPIHealthChecker struct {
	provider ports.ForecastProvider
	config   ports.ConfigProvider
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(provider ports.ForecastProvider, config ports.ConfigProvider) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{provider: provider, config: config}
}

// Check verifies a forecast provider is wired
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    "healthy",
		Details:   map[string]interface{}{},
	}

	if w.provider == nil {
		status.Status = "unhealthy"
		status.Error = "forecast provider is not available"
		return status
	}

	status.Details["provider"] = w.provider.GetProviderName()
	if w.config != nil {
		cfg := w.config.GetWeatherConfig()
		status.Details["url"] = cfg.ProviderURL
	}
	return status
}
