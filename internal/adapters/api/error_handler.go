package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherlookup.app/internal/core/lookup"
	errorspkg "weatherlookup.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError maps application errors to HTTP responses. Lookup failures
// never expose their cause.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Type {
	case errorspkg.ErrorTypeValidation:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.ErrorTypeNotFound:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.ErrorTypeLookupFailed:
		statusCode = http.StatusBadGateway
		message = lookup.FailureMessage
	case errorspkg.ErrorTypeExternalAPI:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	case errorspkg.ErrorTypeSession:
		statusCode = http.StatusServiceUnavailable
		message = "Session store unavailable"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	slog.Debug("Metrics endpoint called")

	metrics, err := s.metrics.GetMetrics(c.Request.Context())
	if err != nil {
		slog.Error("Error getting metrics", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// getHealth handles GET /health. Any unhealthy component yields 503.
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())

	status := "healthy"
	code := http.StatusOK
	for _, component := range results {
		if !component.IsHealthy() {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, gin.H{"status": status, "components": results})
}
