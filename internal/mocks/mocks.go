// Package mocks provides testify doubles for the ports package.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherlookup.app/internal/ports"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// ForecastProvider is a mock of ports.ForecastProvider
type ForecastProvider struct {
	mock.Mock
}

func NewForecastProvider(t testingT) *ForecastProvider {
	m := &ForecastProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ForecastProvider) GetForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastData, error) {
	args := m.Called(ctx, query)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	data, _ := args.Get(0).(*ports.ForecastData)
	return data, nil
}

func (m *ForecastProvider) GetProviderName() string {
	args := m.Called()
	return args.String(0)
}

var _ ports.ForecastProvider = (*ForecastProvider)(nil)

// ConfigProvider is a mock of ports.ConfigProvider
type ConfigProvider struct {
	mock.Mock
}

func NewConfigProvider(t testingT) *ConfigProvider {
	m := &ConfigProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	return m.Called().Get(0).(ports.WeatherConfig)
}

func (m *ConfigProvider) GetSessionConfig() ports.SessionConfig {
	return m.Called().Get(0).(ports.SessionConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

var _ ports.ConfigProvider = (*ConfigProvider)(nil)

// Logger is a mock of ports.Logger. Fields are passed to Called as one slice.
type Logger struct {
	mock.Mock
}

func NewLogger(t testingT) *Logger {
	m := &Logger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AllowAll accepts any log call at any level
func (m *Logger) AllowAll() *Logger {
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

func (m *Logger) Debug(msg string, fields ...ports.Field) { m.Called(msg, fields) }
func (m *Logger) Info(msg string, fields ...ports.Field)  { m.Called(msg, fields) }
func (m *Logger) Warn(msg string, fields ...ports.Field)  { m.Called(msg, fields) }
func (m *Logger) Error(msg string, fields ...ports.Field) { m.Called(msg, fields) }

var _ ports.Logger = (*Logger)(nil)

// LookupMetrics is a mock of ports.LookupMetrics
type LookupMetrics struct {
	mock.Mock
}

func NewLookupMetrics(t testingT) *LookupMetrics {
	m := &LookupMetrics{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LookupMetrics) RecordLookup(outcome ports.LookupOutcome, duration time.Duration) {
	m.Called(outcome, duration)
}

var _ ports.LookupMetrics = (*LookupMetrics)(nil)

// SessionStore is a mock of ports.SessionStore
type SessionStore struct {
	mock.Mock
}

func NewSessionStore(t testingT) *SessionStore {
	m := &SessionStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	args := m.Called(ctx, sessionID)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	data, _ := args.Get(0).([]byte)
	return data, nil
}

func (m *SessionStore) Save(ctx context.Context, sessionID string, state []byte, ttl time.Duration) error {
	return m.Called(ctx, sessionID, state, ttl).Error(0)
}

func (m *SessionStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *SessionStore) Name() string {
	return m.Called().String(0)
}

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionMetrics is a mock of ports.SessionMetrics
type SessionMetrics struct {
	mock.Mock
}

func NewSessionMetrics(t testingT) *SessionMetrics {
	m := &SessionMetrics{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionMetrics) RecordSessionOperation(store, operation string, success bool) {
	m.Called(store, operation, success)
}

var _ ports.SessionMetrics = (*SessionMetrics)(nil)
