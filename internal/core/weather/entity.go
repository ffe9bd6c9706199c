package weather

import (
	"fmt"
	"strings"

	"weatherlookup.app/pkg/validation"
)

// Condition is a textual weather description with its icon URL
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Location identifies where a snapshot was taken
type Location struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	LocalTime string `json:"localtime"`
}

// Current holds current conditions
type Current struct {
	TempC     float64   `json:"temp_c"`
	Condition Condition `json:"condition"`
	WindKph   float64   `json:"wind_kph"`
}

// ForecastDay is one daily forecast entry. DateEpoch only distinguishes
// entries when rendering a list.
type ForecastDay struct {
	Date      string    `json:"date"`
	DateEpoch int64     `json:"date_epoch"`
	MaxTempC  float64   `json:"maxtemp_c"`
	MinTempC  float64   `json:"mintemp_c"`
	Condition Condition `json:"condition"`
}

// Snapshot is the full result of one lookup: current conditions plus the
// daily forecast in the order the provider returned it.
type Snapshot struct {
	Location Location      `json:"location"`
	Current  Current       `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
}

// LookupRequest represents a request for a weather snapshot
type LookupRequest struct {
	City string
}

// IsValid validates the lookup request
func (r *LookupRequest) IsValid() error {
	if !validation.IsNotEmpty(r.City) {
		return fmt.Errorf("city cannot be empty")
	}
	return nil
}

// NormalizeCity normalizes city name for consistent processing
func (r *LookupRequest) NormalizeCity() {
	r.City = strings.TrimSpace(r.City)
}

// IsValid checks the snapshot names a location with a physical temperature.
// Forecast entries are passed through as received, even when empty or sharing
// an epoch.
func (s *Snapshot) IsValid() error {
	if strings.TrimSpace(s.Location.Name) == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	if s.Current.TempC < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	return nil
}

// String returns a string representation of the snapshot
func (s *Snapshot) String() string {
	return fmt.Sprintf("%s: %.1f°C, %s, %d forecast days",
		s.Location.Name, s.Current.TempC, s.Current.Condition.Text, len(s.Forecast))
}
