package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// DispatchKey is the context key for the dispatch path ("method", "raw").
	DispatchKey contextKey = "dispatch"

	// MethodKey is the context key for the packaged method name.
	MethodKey contextKey = "method"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithDispatch adds the dispatch path to the context.
func WithDispatch(ctx context.Context, dispatch string) context.Context {
	return context.WithValue(ctx, DispatchKey, dispatch)
}

// GetDispatch retrieves the dispatch path from the context.
func GetDispatch(ctx context.Context) string {
	if dispatch, ok := ctx.Value(DispatchKey).(string); ok {
		return dispatch
	}
	return ""
}

// WithMethod adds the packaged method name to the context.
func WithMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, MethodKey, method)
}

// GetMethod retrieves the packaged method name from the context.
func GetMethod(ctx context.Context) string {
	if method, ok := ctx.Value(MethodKey).(string); ok {
		return method
	}
	return ""
}

// contextAttrs extracts the request fields carried by ctx.
func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr

	if requestID := GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	if dispatch := GetDispatch(ctx); dispatch != "" {
		attrs = append(attrs, slog.String("dispatch", dispatch))
	}

	if method := GetMethod(ctx); method != "" {
		attrs = append(attrs, slog.String("method", method))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return attrs
}
