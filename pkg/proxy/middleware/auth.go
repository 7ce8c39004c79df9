package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"mercator-hq/courier/pkg/proxy"
	"mercator-hq/courier/pkg/proxy/types"
)

// AuthMiddleware requires "Authorization: Bearer <token>" on every request
// it wraps. The comparison runs in constant time.
//
// An empty token is a server misconfiguration: every request is refused
// with 500 rather than let through. A missing or wrong token yields 401.
//
// Example usage:
//
//	handler = AuthMiddleware(cfg.Auth.Token)(handler)
func AuthMiddleware(token string) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(expected) == 0 {
				slog.ErrorContext(r.Context(), "relay auth token is not configured",
					"path", r.URL.Path,
				)
				writeAuthFailure(w, http.StatusInternalServerError, "server auth token is not configured")
				return
			}

			presented := proxy.ExtractBearerToken(r)
			if presented == "" || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
				slog.WarnContext(r.Context(), "unauthorized relay request",
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"token_present", presented != "",
				)
				writeAuthFailure(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthFailure(w http.ResponseWriter, status int, message string) {
	_ = proxy.WriteFailure(w, types.NewFailureResponse(message, status, nil))
}
