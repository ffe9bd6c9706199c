package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"weatherlookup.app/internal/config"
)

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 9090},
		Weather: config.WeatherConfig{
			APIKey:  "secret",
			BaseURL: "https://api.weatherapi.com/v1",
		},
		Session: config.SessionConfig{Store: config.StoreTypeRedis, TTLMinutes: 30, CookieName: "wl"},
	}
	adapter := NewConfigProviderAdapter(cfg)

	weather := adapter.GetWeatherConfig()
	assert.Equal(t, "https://api.weatherapi.com/v1", weather.ProviderURL)

	session := adapter.GetSessionConfig()
	assert.Equal(t, "redis", session.Store)
	assert.Equal(t, 30*time.Minute, session.TTL)
	assert.Equal(t, "wl", session.CookieName)

	assert.Equal(t, 9090, adapter.GetServerConfig().Port)
}
