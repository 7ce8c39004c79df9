package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. Relay-specific keys use the "courier.*" namespace.
//
// Credentials, cookies and query strings are never recorded.
const (
	AttrRequestID = "courier.request_id"
	AttrDispatch  = "courier.dispatch"
	AttrMethod    = "courier.method"
	AttrResource  = "courier.resource"
	AttrEmpty     = "courier.empty_result"

	AttrHTTPMethod = "http.request.method"
	AttrURLPath    = "url.path"
	AttrServerHost = "server.address"
	AttrStatusCode = "http.response.status_code"
)

// SetDispatchAttributes records which path served a relay call.
//
// Example:
//
//	SetDispatchAttributes(span, "method", "getUserByScreenName")
func SetDispatchAttributes(span trace.Span, dispatch, target string) {
	attrs := []attribute.KeyValue{attribute.String(AttrDispatch, dispatch)}
	if target != "" {
		attrs = append(attrs, attribute.String(AttrMethod, target))
	}
	span.SetAttributes(attrs...)
}

// SetOutboundAttributes records the outbound request of the raw path.
func SetOutboundAttributes(span trace.Span, method, host, path string) {
	span.SetAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrServerHost, host),
		attribute.String(AttrURLPath, path),
	)
}

// SetStatusCode records the platform's response status.
func SetStatusCode(span trace.Span, status int) {
	if status > 0 {
		span.SetAttributes(attribute.Int(AttrStatusCode, status))
	}
}

// MarkEmptyResult flags a call answered by the empty-result policy.
func MarkEmptyResult(span trace.Span) {
	span.SetAttributes(attribute.Bool(AttrEmpty, true))
	span.AddEvent("empty_result")
}
