// Package logger provides a context-aware logrus wrapper. Handlers stamp a
// request id into the context once and every layer below pulls the same
// enriched entry back out with Logger(ctx).
package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

const requestIDKey contextKey = "request_id"

var baseLogger = logrus.New()

func init() {
	baseLogger.SetOutput(os.Stdout)
	baseLogger.SetFormatter(&logrus.JSONFormatter{})
	baseLogger.SetLevel(logrus.InfoLevel)
}

// SetLevel adjusts the global log level from its string form ("debug",
// "info", ...). Unknown values are ignored and the level stays as-is.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return
	}
	baseLogger.SetLevel(parsed)
}

// SetFormatter switches between the "json" and "text" formatters.
func SetFormatter(format string) {
	if strings.EqualFold(format, "text") {
		baseLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	baseLogger.SetFormatter(&logrus.JSONFormatter{})
}

// WithRequestId returns a context carrying the given request id.
func WithRequestId(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestId extracts the request id from the context, empty if unset.
func RequestId(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Logger returns a logrus entry enriched with the request id from the
// context, if any.
func Logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(baseLogger)
	if requestID := RequestId(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}
