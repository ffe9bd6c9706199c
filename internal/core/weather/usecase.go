package weather

import (
	"context"
	"time"

	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

// ForecastDays is the number of daily entries requested per lookup
const ForecastDays = 5

type UseCase struct {
	provider ports.ForecastProvider
	logger   ports.Logger
	metrics  ports.LookupMetrics
}

type UseCaseDependencies struct {
	Provider ports.ForecastProvider
	Logger   ports.Logger
	Metrics  ports.LookupMetrics
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		provider: deps.Provider,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

// Lookup fetches one snapshot for the requested city. Every provider or shape
// failure is reported as a single LookupFailed error.
func (uc *UseCase) Lookup(ctx context.Context, request LookupRequest) (*Snapshot, error) {
	if err := request.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid lookup request: " + err.Error())
	}

	request.NormalizeCity()
	city := request.City
	days := ForecastDays
	uc.logger.Debug("Looking up weather", ports.F("city", city), ports.F("days", days))

	started := time.Now()
	snapshot, err := uc.fetch(ctx, city, days)
	elapsed := time.Since(started)
	if err != nil {
		uc.metrics.RecordLookup(ports.LookupOutcomeFailure, elapsed)
		uc.logger.Error("Weather lookup failed",
			ports.F("city", city),
			ports.F("duration_ms", elapsed.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, errors.NewLookupFailedError("weather lookup for "+city+" failed", err)
	}

	uc.metrics.RecordLookup(ports.LookupOutcomeSuccess, elapsed)
	uc.logger.Debug("Weather lookup succeeded",
		ports.F("city", city),
		ports.F("location", snapshot.Location.Name),
		ports.F("forecast_days", len(snapshot.Forecast)))
	return snapshot, nil
}

func (uc *UseCase) fetch(ctx context.Context, city string, days int) (*Snapshot, error) {
	data, err := uc.provider.GetForecast(ctx, ports.ForecastQuery{City: city, Days: days})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.NewExternalAPIError("provider returned no data", nil)
	}

	snapshot := convertFromPortsForecast(data)
	if err := snapshot.IsValid(); err != nil {
		return nil, errors.NewExternalAPIError("invalid forecast from provider: "+err.Error(), nil)
	}

	return snapshot, nil
}

func convertFromPortsForecast(data *ports.ForecastData) *Snapshot {
	days := make([]ForecastDay, len(data.Days))
	for i, d := range data.Days {
		days[i] = ForecastDay{
			Date:      d.Date,
			DateEpoch: d.DateEpoch,
			MaxTempC:  d.MaxTempC,
			MinTempC:  d.MinTempC,
			Condition: Condition{Text: d.Condition.Text, Icon: d.Condition.Icon},
		}
	}

	return &Snapshot{
		Location: Location{
			Name:      data.Location.Name,
			Region:    data.Location.Region,
			Country:   data.Location.Country,
			LocalTime: data.Location.LocalTime,
		},
		Current: Current{
			TempC:     data.Current.TempC,
			Condition: Condition{Text: data.Current.Condition.Text, Icon: data.Current.Condition.Icon},
			WindKph:   data.Current.WindKph,
		},
		Forecast: days,
	}
}
