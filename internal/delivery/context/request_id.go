// Package context carries the trace id and the scoped logger of one unit of
// work: an HTTP request or a queued change event.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type scopeKey int

const (
	keyRequestID scopeKey = iota
	keyLogger
)

// HeaderXRequestID is the header the trace id travels in between services.
const HeaderXRequestID = "X-Request-Id"

// echoKeyRequestID is the echo.Context key of the trace id.
const echoKeyRequestID = "request_id"

// Scoped returns ctx carrying requestID and a logger annotated with it.
func Scoped(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	scoped := logger.With(slog.String("request_id", requestID))

	return WithLogger(WithRequestID(ctx, requestID), scoped)
}

// GetRequestID returns the trace id stored on c, or "" before the request id
// middleware has run.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// SetRequestID stores the trace id on c.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext returns the trace id of ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// WithRequestID returns ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLoggerOrDefault returns the scoped logger of ctx, or fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}
