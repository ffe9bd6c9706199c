// Package external provides adapters for external services
// These adapters implement ports for the weather forecast provider
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherlookup.app/internal/ports"
	"weatherlookup.app/pkg/errors"
)

const maxErrorBodyBytes = 4 << 10

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherAPIForecastProvider implements ForecastProvider for WeatherAPI.com
type WeatherAPIForecastProvider struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// WeatherAPIProviderParams holds parameters for creating the WeatherAPI provider
type WeatherAPIProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// weatherAPIForecastResponse is the subset of /forecast.json this service reads.
// Any other field in the body is ignored.
type weatherAPIForecastResponse struct {
	Location *struct {
		Name      string `json:"name"`
		Region    string `json:"region"`
		Country   string `json:"country"`
		LocalTime string `json:"localtime"`
	} `json:"location"`
	Current *struct {
		TempC     float64            `json:"temp_c"`
		Condition weatherAPICondition `json:"condition"`
		WindKph   float64            `json:"wind_kph"`
	} `json:"current"`
	Forecast *struct {
		ForecastDay []struct {
			Date      string `json:"date"`
			DateEpoch int64  `json:"date_epoch"`
			Day       struct {
				MaxTempC  float64            `json:"maxtemp_c"`
				MinTempC  float64            `json:"mintemp_c"`
				Condition weatherAPICondition `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type weatherAPICondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type weatherAPIErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewWeatherAPIForecastProvider creates a new WeatherAPI forecast provider
func NewWeatherAPIForecastProvider(params WeatherAPIProviderParams) *WeatherAPIForecastProvider {
	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &WeatherAPIForecastProvider{
		apiKey:  params.APIKey,
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		client:  client,
		logger:  params.Logger,
	}
}

// GetForecast retrieves current conditions and the daily forecast
func (p *WeatherAPIForecastProvider) GetForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastData, error) {
	if strings.TrimSpace(query.City) == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}
	if query.Days < 1 {
		return nil, errors.NewValidationError("days must be positive")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.forecastURL(query), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build WeatherAPI request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to call WeatherAPI", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("Failed to close WeatherAPI response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, p.statusError(resp)
	}

	var apiResp weatherAPIForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode WeatherAPI response", err)
	}

	return convertForecastResponse(&apiResp)
}

// GetProviderName returns the name of this weather provider
func (p *WeatherAPIForecastProvider) GetProviderName() string {
	return "weatherapi"
}

func (p *WeatherAPIForecastProvider) forecastURL(query ports.ForecastQuery) string {
	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", query.City)
	params.Set("days", strconv.Itoa(query.Days))
	params.Set("aqi", "no")
	return p.baseURL + "/forecast.json?" + params.Encode()
}

func (p *WeatherAPIForecastProvider) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var apiErr weatherAPIErrorResponse
	detail := ""
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		detail = fmt.Sprintf(" (code %d: %s)", apiErr.Error.Code, apiErr.Error.Message)
	}

	message := fmt.Sprintf("WeatherAPI returned status %d%s", resp.StatusCode, detail)
	// 1006 is "No matching location found"
	if resp.StatusCode == http.StatusNotFound || apiErr.Error.Code == 1006 {
		return errors.NewNotFoundError(message)
	}
	return errors.NewExternalAPIError(message, nil)
}

func convertForecastResponse(apiResp *weatherAPIForecastResponse) (*ports.ForecastData, error) {
	if apiResp.Location == nil || apiResp.Current == nil || apiResp.Forecast == nil {
		return nil, errors.NewExternalAPIError("WeatherAPI response is missing location, current or forecast", nil)
	}

	days := make([]ports.ForecastDayData, 0, len(apiResp.Forecast.ForecastDay))
	for _, fd := range apiResp.Forecast.ForecastDay {
		days = append(days, ports.ForecastDayData{
			Date:      fd.Date,
			DateEpoch: fd.DateEpoch,
			MaxTempC:  fd.Day.MaxTempC,
			MinTempC:  fd.Day.MinTempC,
			Condition: ports.ConditionData{Text: fd.Day.Condition.Text, Icon: fd.Day.Condition.Icon},
		})
	}

	return &ports.ForecastData{
		Location: ports.LocationData{
			Name:      apiResp.Location.Name,
			Region:    apiResp.Location.Region,
			Country:   apiResp.Location.Country,
			LocalTime: apiResp.Location.LocalTime,
		},
		Current: ports.CurrentData{
			TempC:     apiResp.Current.TempC,
			Condition: ports.ConditionData{Text: apiResp.Current.Condition.Text, Icon: apiResp.Current.Condition.Icon},
			WindKph:   apiResp.Current.WindKph,
		},
		Days: days,
	}, nil
}
