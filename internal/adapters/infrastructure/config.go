package infrastructure

import (
	"weatherlookup.app/internal/config"
	"weatherlookup.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetWeatherConfig returns weather configuration without credentials
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		ProviderURL: c.config.Weather.BaseURL,
	}
}

// GetSessionConfig returns session configuration
func (c *ConfigProviderAdapter) GetSessionConfig() ports.SessionConfig {
	return ports.SessionConfig{
		Store:      c.config.Session.Store.String(),
		TTL:        c.config.Session.TTL(),
		CookieName: c.config.Session.CookieName,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}
