// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherlookup.app/internal/core/lookup"
	"weatherlookup.app/internal/core/weather"
	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port       int
	CookieName string
	SessionTTL time.Duration
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	controller     LookupController
	weatherUseCase WeatherUseCase
	metrics        MetricsCollector
	health         ports.SystemHealthChecker
	metricsHandler http.Handler
}

// LookupController drives the per-session lookup view
type LookupController interface {
	Submit(ctx context.Context, sessionID, city string) (bool, error)
	State(ctx context.Context, sessionID string) (lookup.ViewState, error)
}

// WeatherUseCase performs one synchronous lookup
type WeatherUseCase interface {
	Lookup(ctx context.Context, request weather.LookupRequest) (*weather.Snapshot, error)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config           ServerConfig
	Controller       LookupController
	WeatherUseCase   WeatherUseCase
	MetricsCollector MetricsCollector
	HealthChecker    ports.SystemHealthChecker
	// MetricsHandler serves the Prometheus exposition on /metrics
	MetricsHandler http.Handler
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	tmpl, err := parsePageTemplate()
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		controller:     opts.Controller,
		weatherUseCase: opts.WeatherUseCase,
		metrics:        opts.MetricsCollector,
		health:         opts.HealthChecker,
		metricsHandler: opts.MetricsHandler,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Controller == nil {
		return errors.NewValidationError("lookup controller is required")
	}
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	if opts.Config.CookieName == "" {
		return errors.NewValidationError("session cookie name is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/", s.getPage)
	s.router.POST("/lookup", s.postLookup)

	api := s.router.Group("/api")
	{
		api.GET("/forecast", s.getForecast)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/health", s.getHealth)
	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

func parsePageTemplate() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{"num": formatNumber}).ParseFS(templateFS, "templates/*.tmpl")
}
