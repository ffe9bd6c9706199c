package ports

import (
	"context"
	"time"
)

// ForecastQuery describes one forecast request sent to a provider
type ForecastQuery struct {
	City string
	Days int
}

// ConditionData is the provider's condition description and icon
type ConditionData struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// LocationData identifies the place a forecast belongs to
type LocationData struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	LocalTime string `json:"localtime"`
}

// CurrentData holds current conditions
type CurrentData struct {
	TempC     float64       `json:"temp_c"`
	Condition ConditionData `json:"condition"`
	WindKph   float64       `json:"wind_kph"`
}

// ForecastDayData holds one daily forecast entry
type ForecastDayData struct {
	Date      string        `json:"date"`
	DateEpoch int64         `json:"date_epoch"`
	MaxTempC  float64       `json:"maxtemp_c"`
	MinTempC  float64       `json:"mintemp_c"`
	Condition ConditionData `json:"condition"`
}

// ForecastData is the provider-neutral result of one forecast request
type ForecastData struct {
	Location LocationData      `json:"location"`
	Current  CurrentData       `json:"current"`
	Days     []ForecastDayData `json:"days"`
}

// ForecastProvider defines the contract for weather forecast providers
type ForecastProvider interface {
	GetForecast(ctx context.Context, query ForecastQuery) (*ForecastData, error)
	GetProviderName() string
}

// LookupOutcome labels the result of a lookup for metrics
type LookupOutcome string

const (
	LookupOutcomeSuccess LookupOutcome = "success"
	LookupOutcomeFailure LookupOutcome = "failure"
)

// LookupMetrics defines the contract for lookup instrumentation
type LookupMetrics interface {
	RecordLookup(outcome LookupOutcome, duration time.Duration)
}

// ProviderMetrics defines the contract for provider request instrumentation
type ProviderMetrics interface {
	RecordProviderRequest(provider string, success bool, duration time.Duration)
}
