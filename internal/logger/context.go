package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID stores a request id on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom returns the request id stored on the context, if any.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// With returns log annotated with the context's request id.
func With(ctx context.Context, log *zap.Logger) *zap.Logger {
	if id := RequestIDFrom(ctx); id != "" {
		return log.With(zap.String("request_id", id))
	}
	return log
}
