package middleware

import (
	"net/http"

	"mercator-hq/courier/pkg/proxy"
	"mercator-hq/courier/pkg/telemetry/logging"

	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header for request ID.
	RequestIDHeader = proxy.RequestIDHeader

	// maxRequestIDLength bounds a client-supplied request ID.
	maxRequestIDLength = 128
)

// RequestIDMiddleware assigns a request ID to each request and adds it to
// the context and response headers. A client-supplied X-Request-ID is
// echoed; otherwise a UUID v4 is generated.
//
// The request ID is stored with logging.WithRequestID, so every log line
// written with the request context carries it.
//
// Example usage:
//
//	handler = RequestIDMiddleware(handler)
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := proxy.ExtractRequestID(r)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		ctx := logging.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
