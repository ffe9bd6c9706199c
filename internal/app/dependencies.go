package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"weatherlookup.app/internal/adapters/external"
	"weatherlookup.app/internal/adapters/infrastructure"
	"weatherlookup.app/internal/adapters/session"
	"weatherlookup.app/internal/config"
	"weatherlookup.app/internal/ports"
)

// DependencyContainer builds and owns the adapters behind the ports
type DependencyContainer struct {
	config   *config.Config
	registry *prometheus.Registry
	ports    *ports.ApplicationPorts

	metrics *infrastructure.MetricsCollectorAdapter
	closers []io.Closer
}

// DependencyOverrides replaces adapters, mainly for tests
type DependencyOverrides struct {
	SessionStore ports.SessionStore
	HTTPClient   external.HTTPClient
	Logger       ports.Logger
}

func NewDependencyContainer(cfg *config.Config, overrides DependencyOverrides) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	if err := container.initializePorts(overrides); err != nil {
		_ = container.Close()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts(overrides DependencyOverrides) error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = &infrastructure.SlogLoggerAdapter{}
	if overrides.Logger != nil {
		logger = overrides.Logger
	}

	c.metrics = infrastructure.NewMetricsCollectorAdapter(c.registry)

	provider, err := c.createForecastProvider(logger, overrides.HTTPClient)
	if err != nil {
		return fmt.Errorf("create forecast provider: %w", err)
	}

	store := overrides.SessionStore
	if store == nil {
		store, err = session.CreateSessionStore(&c.config.Session)
		if err != nil {
			return fmt.Errorf("create session store: %w", err)
		}
		if closer, ok := store.(io.Closer); ok {
			c.closers = append(c.closers, closer)
		}
	}
	slog.Info("Session store ready", "type", store.Name())

	c.ports = &ports.ApplicationPorts{
		ForecastProvider: provider,
		LookupMetrics:    c.metrics,
		SessionStore:     session.NewInstrumentedSessionStore(store, c.metrics),
		ConfigProvider:   infrastructure.NewConfigProviderAdapter(c.config),
		Logger:           logger,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// createForecastProvider stacks the decorators: logging sees every attempt,
// instrumentation times the raw provider call.
func (c *DependencyContainer) createForecastProvider(logger ports.Logger, client external.HTTPClient) (ports.ForecastProvider, error) {
	base := external.NewWeatherAPIForecastProvider(external.WeatherAPIProviderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Weather.BaseURL,
		Timeout: c.config.Weather.RequestTimeout(),
		Client:  client,
		Logger:  logger,
	})

	provider := external.NewInstrumentedForecastProvider(base, c.metrics)

	if c.config.Weather.EnableLogging {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, fileLogger)
		provider = external.NewForecastProviderLoggingDecorator(provider,
			infrastructure.FanoutLogger{logger, fileLogger})
		slog.Info("Provider request logging enabled", "path", fileLogger.Path())
	}

	return provider, nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Registry returns the Prometheus registry holding the application collectors
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// MetricsCollector returns the adapter backing the JSON metrics endpoint
func (c *DependencyContainer) MetricsCollector() *infrastructure.MetricsCollectorAdapter {
	return c.metrics
}

// Close releases the session store connection and the provider log file
func (c *DependencyContainer) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
