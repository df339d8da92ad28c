package contextkeys

import (
	"context"

	"vehicle-search-service/internal/core/port"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger stores a call-scoped logger in the context.
func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the call-scoped logger. Returns a no-op logger
// when none was attached, so callers never need a nil check.
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if logger, ok := ctx.Value(loggerKey).(port.LoggerPort); ok {
		return logger
	}
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, port.Fields)        {}
func (nopLogger) Info(string, port.Fields)         {}
func (nopLogger) Warn(string, port.Fields)         {}
func (nopLogger) Error(string, error, port.Fields) {}
func (nopLogger) WithFields(port.Fields) port.LoggerPort {
	return nopLogger{}
}
