package external

import (
	"context"
	"time"

	"weatherlookup.app/internal/ports"
)

// ForecastProviderLoggingDecorator decorates a forecast provider with structured logging
type ForecastProviderLoggingDecorator struct {
	provider ports.ForecastProvider
	logger   ports.Logger
}

// NewForecastProviderLoggingDecorator creates a new logging decorator for forecast providers
func NewForecastProviderLoggingDecorator(provider ports.ForecastProvider, logger ports.Logger) ports.ForecastProvider {
	return &ForecastProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetForecast wraps the provider call with structured logging
func (d *ForecastProviderLoggingDecorator) GetForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastData, error) {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Forecast request started",
		ports.F("provider", providerName),
		ports.F("city", query.City),
		ports.F("days", query.Days),
		ports.F("event", "request"))

	startTime := time.Now()
	data, err := d.provider.GetForecast(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Forecast request failed",
			ports.F("provider", providerName),
			ports.F("city", query.City),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Forecast request completed",
		ports.F("provider", providerName),
		ports.F("city", query.City),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("location", data.Location.Name),
		ports.F("temperature", data.Current.TempC),
		ports.F("condition", data.Current.Condition.Text),
		ports.F("forecast_days", len(data.Days)))

	return data, nil
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *ForecastProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}
