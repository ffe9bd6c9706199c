package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherlookup.app/internal/adapters/api"
	"weatherlookup.app/internal/adapters/infrastructure"
	"weatherlookup.app/internal/config"
	"weatherlookup.app/internal/core/lookup"
	"weatherlookup.app/internal/core/weather"
	"weatherlookup.app/internal/ports"
)

// loadingGrace covers result writes on top of the provider request timeout
const loadingGrace = 15 * time.Second

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase *weather.UseCase
	controller     *lookup.Controller

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts

	// lifetime bounds in-flight lookups; cancelled on shutdown
	lifetime context.Context
	stop     context.CancelFunc
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg, DependencyOverrides{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	lifetime, stop := context.WithCancel(context.Background())
	app := &Application{
		config:   cfg,
		deps:     deps,
		ports:    deps.ApplicationPorts(),
		lifetime: lifetime,
		stop:     stop,
	}

	if err := app.initializeUseCases(); err != nil {
		stop()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		stop()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Provider: a.ports.ForecastProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.LookupMetrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	controller, err := lookup.NewController(lookup.ControllerDependencies{
		Store:       a.ports.SessionStore,
		Lookuper:    a.weatherUseCase,
		Logger:      a.ports.Logger,
		TTL:            a.ports.ConfigProvider.GetSessionConfig().TTL,
		LoadingTimeout: a.config.Weather.RequestTimeout() + loadingGrace,
		BaseContext:    a.lifetime,
	})
	if err != nil {
		return fmt.Errorf("create lookup controller: %w", err)
	}
	a.controller = controller

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		SessionStoreChecker: infrastructure.NewSessionStoreHealthChecker(a.ports.SessionStore),
		WeatherAPIChecker:   infrastructure.NewWeatherAPIHealthChecker(a.ports.ForecastProvider, a.ports.ConfigProvider),
	})

	sessionCfg := a.ports.ConfigProvider.GetSessionConfig()
	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:       a.ports.ConfigProvider.GetServerConfig().Port,
			CookieName: sessionCfg.CookieName,
			SessionTTL: sessionCfg.TTL,
		},
		Controller:       a.controller,
		WeatherUseCase:   a.weatherUseCase,
		MetricsCollector: a.deps.MetricsCollector(),
		HealthChecker:    systemHealthChecker,
		MetricsHandler:   promhttp.HandlerFor(a.deps.Registry(), promhttp.HandlerOpts{}),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start serves HTTP until the server is shut down
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, settles in-flight lookups and releases
// the session store and log file.
func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	a.stop()
	settled := make(chan struct{})
	go func() {
		a.controller.Wait()
		close(settled)
	}()
	select {
	case <-settled:
	case <-ctx.Done():
		slog.Warn("Shutdown deadline reached with lookups in flight")
	}

	if err := a.deps.Close(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetController returns the lookup controller for testing
func (a *Application) GetController() *lookup.Controller {
	return a.controller
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}
