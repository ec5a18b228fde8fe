// Package logging configures the service logger and carries the request id
// through context.Context so every log line of a request is correlated.
package logging

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// RequestIDField is the log field holding the correlation id
const RequestIDField = "request_id"

var base = newLogger("development", "")

// Init replaces the base logger according to environment and level
func Init(environment, level string) *logrus.Logger {
	base = newLogger(environment, level)
	return base
}

// Base returns the process wide logger
func Base() *logrus.Logger {
	return base
}

func newLogger(environment, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if parsed, err := logrus.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		logger.SetLevel(parsed)
	} else if environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// WithRequestID stores id in ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID extracts the request id from ctx, or "" if none
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// FromContext returns a log entry tagged with the request id found in ctx
func FromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(base)
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField(RequestIDField, id)
	}
	return entry
}
