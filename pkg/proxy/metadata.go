package proxy

import (
	"net/http"
	"time"

	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/telemetry/metrics"
)

// RequestMetadata describes a relay request for logging and tracing.
// It never holds session credentials.
type RequestMetadata struct {
	// RequestID is a unique identifier for the request.
	RequestID string

	// Dispatch is the selected path ("method", "raw" or "none").
	Dispatch string

	// Target is the method name or endpoint path.
	Target string

	// HTTPMethod is the raw request method; empty for packaged methods.
	HTTPMethod string

	// Path is the relay's own HTTP request path.
	Path string

	// UserAgent is the client's user agent string.
	UserAgent string

	// RemoteAddr is the client's IP address.
	RemoteAddr string

	// Timestamp is when the request was received.
	Timestamp time.Time
}

// ResponseMetadata describes the relay's answer for logging and metrics.
type ResponseMetadata struct {
	// RequestID is the unique identifier for the request.
	RequestID string

	// StatusCode is the HTTP response status code.
	StatusCode int

	// RemoteStatus is the platform status for remote failures, else 0.
	RemoteStatus int

	// Outcome is one of the metrics.Outcome* values.
	Outcome string

	// Latency is the total request processing time.
	Latency time.Duration

	// Error contains any error that occurred.
	Error error

	// Timestamp is when the response was completed.
	Timestamp time.Time
}

// ExtractRequestMetadata builds request metadata from the HTTP request and
// its parsed envelope. env may be nil when parsing failed.
func ExtractRequestMetadata(r *http.Request, requestID string, env *types.Envelope) *RequestMetadata {
	metadata := &RequestMetadata{
		RequestID:  requestID,
		Dispatch:   metrics.DispatchNone,
		Path:       r.URL.Path,
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
		Timestamp:  time.Now(),
	}

	if env == nil {
		return metadata
	}

	switch {
	case env.MethodName != "":
		metadata.Dispatch = metrics.DispatchMethod
		metadata.Target = env.MethodName
	case env.EndpointPath != "":
		metadata.Dispatch = metrics.DispatchRaw
		metadata.Target = env.EndpointPath
		metadata.HTTPMethod = env.Method()
	}

	return metadata
}

// ExtractResponseMetadata builds response metadata for a finished request.
// empty marks a success that was reclassified from a decode failure.
func ExtractResponseMetadata(requestID string, statusCode int, err error, empty bool, latency time.Duration) *ResponseMetadata {
	outcome := Outcome(err)
	if err == nil && empty {
		outcome = metrics.OutcomeEmpty
	}

	return &ResponseMetadata{
		RequestID:    requestID,
		StatusCode:   statusCode,
		RemoteStatus: RemoteStatus(err),
		Outcome:      outcome,
		Latency:      latency,
		Error:        err,
		Timestamp:    time.Now(),
	}
}

// LogAttrs returns the request fields as slog key/value pairs.
func (m *RequestMetadata) LogAttrs() []any {
	attrs := []any{"dispatch", m.Dispatch}
	if m.Target != "" {
		attrs = append(attrs, "target", m.Target)
	}
	if m.HTTPMethod != "" {
		attrs = append(attrs, "http_method", m.HTTPMethod)
	}
	return attrs
}

// IsSuccess returns true if the response was successful (2xx status code).
func (m *ResponseMetadata) IsSuccess() bool {
	return m.StatusCode >= 200 && m.StatusCode < 300
}

// IsError returns true if an error occurred.
func (m *ResponseMetadata) IsError() bool {
	return m.Error != nil || m.StatusCode >= 400
}
