package external

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherlookup.app/internal/ports"
)

func TestForecastProviderLoggingDecorator_BasicFunctionality(t *testing.T) {
	testProvider := &testForecastProvider{
		name: "test-provider",
		response: &ports.ForecastData{
			Location: ports.LocationData{Name: "Paris"},
			Current:  ports.CurrentData{TempC: 18, Condition: ports.ConditionData{Text: "Sunny"}},
			Days:     make([]ports.ForecastDayData, 5),
		},
	}
	testLogger := &testLogger{}

	decorator := NewForecastProviderLoggingDecorator(testProvider, testLogger)

	result, err := decorator.GetForecast(context.Background(), ports.ForecastQuery{City: "Paris", Days: 5})

	require.NoError(t, err)
	assert.Equal(t, 18.0, result.Current.TempC)
	require.Len(t, testLogger.entries, 2)

	requestLog := testLogger.entries[0]
	assert.Equal(t, "INFO", requestLog.level)
	assert.Equal(t, "Forecast request started", requestLog.message)
	assert.Equal(t, "test-provider", requestLog.fields["provider"])
	assert.Equal(t, "Paris", requestLog.fields["city"])
	assert.Equal(t, 5, requestLog.fields["days"])

	responseLog := testLogger.entries[1]
	assert.Equal(t, "Forecast request completed", responseLog.message)
	assert.Equal(t, "Sunny", responseLog.fields["condition"])
	assert.Equal(t, 5, responseLog.fields["forecast_days"])
	assert.Contains(t, responseLog.fields, "duration_ms")

	assert.Equal(t, "logged(test-provider)", decorator.GetProviderName())
}

func TestForecastProviderLoggingDecorator_ErrorHandling(t *testing.T) {
	providerErr := errors.New("API rate limit exceeded")
	testLogger := &testLogger{}
	decorator := NewForecastProviderLoggingDecorator(&testForecastProvider{name: "p", err: providerErr}, testLogger)

	result, err := decorator.GetForecast(context.Background(), ports.ForecastQuery{City: "Nowhere", Days: 5})

	assert.Nil(t, result)
	assert.Equal(t, providerErr, err)
	require.Len(t, testLogger.entries, 2)
	assert.Equal(t, "ERROR", testLogger.entries[1].level)
	assert.Equal(t, "API rate limit exceeded", testLogger.entries[1].fields["error"])
}

func TestForecastProviderLoggingDecorator_DurationTracking(t *testing.T) {
	testLogger := &testLogger{}
	provider := &testForecastProvider{
		name:     "slow",
		delay:    20 * time.Millisecond,
		response: &ports.ForecastData{Location: ports.LocationData{Name: "Paris"}},
	}
	decorator := NewForecastProviderLoggingDecorator(provider, testLogger)

	_, err := decorator.GetForecast(context.Background(), ports.ForecastQuery{City: "Paris", Days: 5})

	require.NoError(t, err)
	duration, ok := testLogger.entries[1].fields["duration_ms"].(int64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, duration, int64(20))
}

// Test helper structs
type testForecastProvider struct {
	name     string
	response *ports.ForecastData
	err      error
	delay    time.Duration
}

func (p *testForecastProvider) GetForecast(ctx context.Context, query ports.ForecastQuery) (*ports.ForecastData, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

func (p *testForecastProvider) GetProviderName() string {
	return p.name
}

type logEntry struct {
	level   string
	message string
	fields  map[string]interface{}
}

type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) Debug(msg string, fields ...ports.Field) { l.addEntry("DEBUG", msg, fields...) }
func (l *testLogger) Info(msg string, fields ...ports.Field)  { l.addEntry("INFO", msg, fields...) }
func (l *testLogger) Warn(msg string, fields ...ports.Field)  { l.addEntry("WARN", msg, fields...) }
func (l *testLogger) Error(msg string, fields ...ports.Field) { l.addEntry("ERROR", msg, fields...) }

func (l *testLogger) addEntry(level, message string, fields ...ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fieldMap := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		fieldMap[field.Key] = field.Value
	}
	l.entries = append(l.entries, logEntry{level: level, message: message, fields: fieldMap})
}
