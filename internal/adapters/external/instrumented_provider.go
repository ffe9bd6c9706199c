package external

import (
	"context"
	"time"

	"weatherlookup.app/internal/ports"
)

// InstrumentedForecastProvider records request counts and latency of the wrapped provider
type InstrumentedForecastProvider struct {
	provider ports.ForecastProvider
	metrics  ports.ProviderMetrics
	name     string
}

// NewInstrumentedForecastProvider wraps provider with metrics recording.
// Metrics are labeled with the undecorated provider name.
func NewInstrumentedForecastProvider(provider ports.ForecastProvider, metrics ports.ProviderMetrics) ports.ForecastProvider {
	return &InstrumentedForecastProvider{
		provider: provider,
		metrics:  metrics,
		name:     provider.GetProviderName(),
	}
}

func (p *InstrumentedForecastProvider) GetForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastData, error) {
	started := time.Now()
	data, err := p.provider.GetForecast(ctx, query)
	p.metrics.RecordProviderRequest(p.name, err == nil, time.Since(started))
	return data, err
}

func (p *InstrumentedForecastProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}
