package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherlookup.app/internal/adapters/external"
	"weatherlookup.app/internal/adapters/infrastructure"
	"weatherlookup.app/internal/adapters/session"
	"weatherlookup.app/internal/config"
	"weatherlookup.app/internal/core/lookup"
	"weatherlookup.app/internal/core/weather"
)

const parisForecastJSON = `{
  "location": {"name": "Paris", "region": "Ile-de-France", "country": "France", "localtime": "2026-10-19 12:00"},
  "current": {"temp_c": 18.0, "condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/113.png"}, "wind_kph": 11.2},
  "forecast": {"forecastday": [
    {"date": "2026-10-19", "date_epoch": 1792368000, "day": {"maxtemp_c": 20.1, "mintemp_c": 9.4, "condition": {"text": "Sunny", "icon": "//cdn/113.png"}}},
    {"date": "2026-10-20", "date_epoch": 1792454400, "day": {"maxtemp_c": 19.0, "mintemp_c": 10.0, "condition": {"text": "Cloudy", "icon": "//cdn/119.png"}}},
    {"date": "2026-10-23", "date_epoch": 1792713600, "day": {"maxtemp_c": 18.3, "mintemp_c": 9.9, "condition": {"text": "Partly cloudy", "icon": "//cdn/116.png"}}},
    {"date": "2026-10-21", "date_epoch": 1792540800, "day": {"maxtemp_c": 17.5, "mintemp_c": 8.2, "condition": {"text": "Light rain", "icon": "//cdn/296.png"}}},
    {"date": "2026-10-22", "date_epoch": 1792627200, "day": {"maxtemp_c": 16.0, "mintemp_c": 7.0, "condition": {"text": "Overcast", "icon": "//cdn/122.png"}}}
  ]}
}`

var dataKeyPattern = regexp.MustCompile(`data-key="(\d+)"`)

// testEnv wires the real controller, use case and provider against a fake
// WeatherAPI server
type testEnv struct {
	router     *gin.Engine
	controller *lookup.Controller
	requests   atomic.Int32
	gate       chan struct{}
	gateOnce   sync.Once
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{gate: make(chan struct{})}

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		switch strings.ToLower(r.URL.Query().Get("q")) {
		case "paris":
			fmt.Fprint(w, parisForecastJSON)
		case "slowparis":
			<-env.gate
			fmt.Fprint(w, parisForecastJSON)
		case "garbled":
			fmt.Fprint(w, `{"location": {"name": "Paris"`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"code":1006,"message":"No matching location found."}}`)
		}
	}))
	t.Cleanup(provider.Close)

	logger := &infrastructure.SlogLoggerAdapter{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	reg := prometheus.NewRegistry()
	metrics := infrastructure.NewMetricsCollectorAdapter(reg)
	cfg := &config.Config{
		Weather: config.WeatherConfig{APIKey: "test-key", BaseURL: provider.URL + "/v1"},
		Session: config.SessionConfig{Store: config.StoreTypeMemory, TTLMinutes: 60, CookieName: "weather_session"},
	}

	forecastProvider := external.NewWeatherAPIForecastProvider(external.WeatherAPIProviderParams{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Timeout: 5 * time.Second,
		Logger:  logger,
	})
	useCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Provider: forecastProvider,
		Logger:   logger,
		Metrics:  metrics,
	})
	require.NoError(t, err)

	store := session.NewInstrumentedSessionStore(session.NewMemorySessionStore(), metrics)
	controller, err := lookup.NewController(lookup.ControllerDependencies{
		Store:    store,
		Lookuper: useCase,
		Logger:   logger,
		TTL:      cfg.Session.TTL(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		env.release()
		controller.Wait()
	})

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:           ServerConfig{Port: 8080, CookieName: cfg.Session.CookieName, SessionTTL: cfg.Session.TTL()},
		Controller:       controller,
		WeatherUseCase:   useCase,
		MetricsCollector: metrics,
		HealthChecker: infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
			SessionStoreChecker: infrastructure.NewSessionStoreHealthChecker(store),
			WeatherAPIChecker:   infrastructure.NewWeatherAPIHealthChecker(forecastProvider, infrastructure.NewConfigProviderAdapter(cfg)),
		}),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	require.NoError(t, err)

	env.router = server.GetRouter()
	env.controller = controller
	return env
}

func (e *testEnv) release() {
	e.gateOnce.Do(func() { close(e.gate) })
}

// submit posts the form and returns the session cookie
func (e *testEnv) submit(t *testing.T, cookie *http.Cookie, city string) *http.Cookie {
	t.Helper()
	form := url.Values{"city": {city}}
	req := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == "weather_session" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func (e *testEnv) page(t *testing.T, cookie *http.Cookie) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestPage_IdleShowsFormOnly(t *testing.T) {
	env := newTestEnv(t)

	body := env.page(t, nil)

	assert.Contains(t, body, `<h1>Weather App</h1>`)
	assert.Contains(t, body, `placeholder="Enter city name"`)
	assert.NotContains(t, body, "Loading...")
	assert.NotContains(t, body, lookup.FailureMessage)
	assert.NotContains(t, body, "Weather in")
}

func TestPage_ParisSuccess(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "Paris")
	env.controller.Wait()
	body := env.page(t, cookie)

	assert.Contains(t, body, "Weather in Paris")
	assert.Contains(t, body, "Temperature: 18 °C")
	assert.Contains(t, body, "Condition: Sunny")
	assert.Contains(t, body, "Wind speed: 11.2 kph")
	assert.Contains(t, body, "5-Day Forecast")
	assert.Contains(t, body, "Max Temp: 19 °C")
	assert.Contains(t, body, "Min Temp: 9.4 °C")
	assert.Contains(t, body, `value="Paris"`)
	assert.NotContains(t, body, "Loading...")
	assert.NotContains(t, body, `http-equiv="refresh"`)

	var keys []string
	for _, m := range dataKeyPattern.FindAllStringSubmatch(body, -1) {
		keys = append(keys, m[1])
	}
	// received order, not date order
	assert.Equal(t, []string{"1792368000", "1792454400", "1792713600", "1792540800", "1792627200"}, keys)
	assert.Equal(t, int32(1), env.requests.Load())
}

func TestPage_WhitespaceSubmissionIsIgnored(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "   ")
	env.controller.Wait()
	body := env.page(t, cookie)

	assert.Equal(t, int32(0), env.requests.Load(), "no request may reach the provider")
	assert.NotContains(t, body, "Loading...")
	assert.NotContains(t, body, "Weather in")
}

func TestPage_WhitespaceKeepsPreviousResult(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "Paris")
	env.controller.Wait()
	cookie = env.submit(t, cookie, "\t ")
	env.controller.Wait()

	body := env.page(t, cookie)
	assert.Contains(t, body, "Temperature: 18 °C")
	assert.Equal(t, int32(1), env.requests.Load())
}

func TestPage_NowhereFails(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "Nowhere")
	env.controller.Wait()
	body := env.page(t, cookie)

	assert.Contains(t, body, "Error fetching weather data. Please try again.")
	assert.NotContains(t, body, "Loading...")
	assert.NotContains(t, body, "Weather in")
}

func TestPage_MalformedBodyFails(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "Garbled")
	env.controller.Wait()

	assert.Contains(t, env.page(t, cookie), lookup.FailureMessage)
}

func TestPage_LoadingThenResult(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "SlowParis")
	body := env.page(t, cookie)
	assert.Contains(t, body, "Loading...")
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.NotContains(t, body, lookup.FailureMessage)

	env.release()
	env.controller.Wait()

	body = env.page(t, cookie)
	assert.NotContains(t, body, "Loading...")
	assert.Contains(t, body, "Weather in SlowParis")
}

func TestPage_FailureReplacesPreviousSuccess(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, "Paris")
	env.controller.Wait()
	cookie = env.submit(t, cookie, "Nowhere")
	env.controller.Wait()

	body := env.page(t, cookie)
	assert.Contains(t, body, lookup.FailureMessage)
	assert.NotContains(t, body, "Temperature:")
}

func TestPage_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t)

	env.submit(t, nil, "Paris")
	env.controller.Wait()

	assert.NotContains(t, env.page(t, nil), "Weather in")
	assert.NotContains(t, env.page(t, &http.Cookie{Name: "weather_session", Value: "not-a-uuid"}), "Weather in")
}

func TestPage_EscapesQuery(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.submit(t, nil, `<script>alert(1)</script>`)
	env.controller.Wait()
	body := env.page(t, cookie)

	assert.NotContains(t, body, `<script>alert(1)</script>`)
	assert.Contains(t, body, lookup.FailureMessage)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.submit(t, nil, "Paris")
	env.controller.Wait()

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"sessionStore"`)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `weather_lookups_total{outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), `weather_session_operations_total{operation="save",result="ok",store="memory"}`)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"successes":1`)
}

func TestNewHTTPServerAdapter_Validation(t *testing.T) {
	_, err := NewHTTPServerAdapter(ServerOptions{})
	assert.ErrorContains(t, err, "lookup controller is required")
}
