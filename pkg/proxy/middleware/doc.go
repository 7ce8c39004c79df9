// Package middleware provides the HTTP middleware wrapped around the relay.
//
// # Middleware Chain
//
// The server assembles the chain as:
//
//	handler = Recovery(Tracing(RequestID(Logging(mux))))
//
// and wraps only the relay route with AuthMiddleware, so health and metrics
// stay reachable without the relay token.
//
// # Request ID
//
// RequestIDMiddleware echoes a client X-Request-ID of up to 128 bytes and
// otherwise generates a UUID v4. The ID is returned in the response header
// and stored in the context through the logging package, so every log line
// written with the request context carries request_id.
//
// # Logging
//
// Logging writes one "request completed" line per request with method,
// path, status, latency_ms and bytes. 4xx responses log at WARN and 5xx at
// ERROR; successful probe requests drop to DEBUG. Bodies and headers are
// never logged since they carry session cookies.
//
// # Authentication
//
// AuthMiddleware compares the bearer token in constant time. A server
// started without a token refuses every relay request with 500.
//
// # Recovery
//
// RecoveryMiddleware converts a handler panic into a 500 failure envelope
// and logs the stack trace.
package middleware
