package infrastructure

import (
	"context"

	"weatherlookup.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
}

// SystemHealthCheckerConfig holds the checkers to aggregate
type SystemHealthCheckerConfig struct {
	SessionStoreChecker ports.HealthChecker
	WeatherAPIChecker   ports.HealthChecker
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.SessionStoreChecker != nil {
		checkers["sessionStore"] = config.SessionStoreChecker
	}
	if config.WeatherAPIChecker != nil {
		checkers["weatherAPI"] = config.WeatherAPIChecker
	}
	return &SystemHealthChecker{checkers: checkers}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}
	return results
}
