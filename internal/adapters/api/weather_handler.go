package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherlookup.app/internal/core/weather"
	"weatherlookup.app/pkg/errors"
)

type forecastQuery struct {
	City string `form:"city" binding:"required,notblank,max=256"`
}

// getForecast handles GET /api/forecast requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	var query forecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("city parameter is required"))
		return
	}

	slog.Debug("Getting forecast for city", "city", query.City)

	snapshot, err := s.weatherUseCase.Lookup(c.Request.Context(), weather.LookupRequest{City: query.City})
	if err != nil {
		slog.Error("Weather use case error", "error", err, "city", query.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
