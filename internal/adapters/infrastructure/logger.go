package infrastructure

import (
	"log/slog"

	"weatherlookup.app/internal/ports"
)

// SlogLoggerAdapter implements the Logger port using slog.
// A nil Logger field logs through slog.Default().
type SlogLoggerAdapter struct {
	Logger *slog.Logger
}

func (l *SlogLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	l.target().Debug(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Info(msg string, fields ...ports.Field) {
	l.target().Info(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	l.target().Warn(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) Error(msg string, fields ...ports.Field) {
	l.target().Error(msg, toArgs(fields)...)
}

func (l *SlogLoggerAdapter) target() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func toArgs(fields []ports.Field) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	return args
}

// FanoutLogger forwards every entry to each of its loggers
type FanoutLogger []ports.Logger

func (f FanoutLogger) Debug(msg string, fields ...ports.Field) {
	for _, l := range f {
		l.Debug(msg, fields...)
	}
}

func (f FanoutLogger) Info(msg string, fields ...ports.Field) {
	for _, l := range f {
		l.Info(msg, fields...)
	}
}

func (f FanoutLogger) Warn(msg string, fields ...ports.Field) {
	for _, l := range f {
		l.Warn(msg, fields...)
	}
}

func (f FanoutLogger) Error(msg string, fields ...ports.Field) {
	for _, l := range f {
		l.Error(msg, fields...)
	}
}
