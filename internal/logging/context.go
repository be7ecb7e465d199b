package logging

import "context"

type requestIDKey struct{}

// ContextWithRequestID stores a request id for FromContext.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// FromContext returns base tagged with the request id carried by ctx.
func FromContext(ctx context.Context, base Logger) Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return base.WithField("request_id", id)
	}
	return base
}
