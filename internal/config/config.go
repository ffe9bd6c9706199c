package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherlookup.app/pkg/errors"
)

const (
	maxRedisDB           = 15
	maxSessionTTLMinutes = 10080
	maxRequestTimeout    = 120
	maxPortNumber        = 65535
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig  `split_words:"true"`
	Weather  WeatherConfig `split_words:"true"`
	Session  SessionConfig `split_words:"true"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type WeatherConfig struct {
	APIKey                string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL               string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com/v1"`
	RequestTimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT_SECONDS" default:"10"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_provider.log"`
}

// RequestTimeout returns the provider HTTP client timeout
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

// StoreType represents the backend holding per-session view state
type StoreType int

const (
	StoreTypeUnknown StoreType = iota
	StoreTypeMemory
	StoreTypeRedis
)

// String returns the string representation of store type
func (s StoreType) String() string {
	switch s {
	case StoreTypeMemory:
		return "memory"
	case StoreTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the store type is valid
func (s StoreType) IsValid() bool {
	return s == StoreTypeMemory || s == StoreTypeRedis
}

// StoreTypeFromString converts string to StoreType enum
func StoreTypeFromString(s string) StoreType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return StoreTypeMemory
	case "redis":
		return StoreTypeRedis
	default:
		return StoreTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (s *StoreType) UnmarshalText(text []byte) error {
	*s = StoreTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (s StoreType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type SessionConfig struct {
	Store      StoreType   `envconfig:"SESSION_STORE" default:"memory"`
	TTLMinutes int         `envconfig:"SESSION_TTL_MINUTES" default:"60"`
	CookieName string      `envconfig:"SESSION_COOKIE_NAME" default:"weather_session"`
	Redis      RedisConfig `split_words:"true"`
}

// TTL returns how long an idle session keeps its view state
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Session.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if strings.TrimSpace(w.APIKey) == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY cannot be empty", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.RequestTimeoutSeconds < 1 || w.RequestTimeoutSeconds > maxRequestTimeout {
		return errors.NewConfigurationError(
			fmt.Sprintf("WEATHER_REQUEST_TIMEOUT_SECONDS must be between 1 and %d", maxRequestTimeout), nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when WEATHER_ENABLE_LOGGING is set", nil)
	}
	return nil
}

func (s *SessionConfig) Validate() error {
	if !s.Store.IsValid() {
		return errors.NewConfigurationError("SESSION_STORE must be one of: memory, redis", nil)
	}
	if s.TTLMinutes < 1 || s.TTLMinutes > maxSessionTTLMinutes {
		return errors.NewConfigurationError(
			fmt.Sprintf("SESSION_TTL_MINUTES must be between 1 and %d", maxSessionTTLMinutes), nil)
	}
	if strings.TrimSpace(s.CookieName) == "" {
		return errors.NewConfigurationError("SESSION_COOKIE_NAME cannot be empty", nil)
	}

	if s.Store == StoreTypeRedis {
		return s.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis session store", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}
