package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherlookup.app/internal/core/lookup"
	"weatherlookup.app/internal/core/weather"
)

func TestWeatherHandler_GetForecast_Success(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/forecast?city=Paris", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var snapshot weather.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, "Paris", snapshot.Location.Name)
	assert.Equal(t, 18.0, snapshot.Current.TempC)
	require.Len(t, snapshot.Forecast, 5)
	assert.Equal(t, int64(1792713600), snapshot.Forecast[2].DateEpoch)
}

func TestWeatherHandler_GetForecast_InvalidCity(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{"/api/forecast", "/api/forecast?city=", "/api/forecast?city=%20%20%09"} {
		t.Run(target, func(t *testing.T) {
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "city parameter is required", resp.Error)
		})
	}
	assert.Equal(t, int32(0), env.requests.Load())
}

func TestWeatherHandler_GetForecast_LookupFailed(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/forecast?city=Nowhere", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, lookup.FailureMessage, resp.Error)
}
