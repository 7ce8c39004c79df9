package proxy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mercator-hq/courier/pkg/proxy/types"
)

const (
	// DefaultMaxBodyBytes is the request body limit used when none is configured (10MB).
	DefaultMaxBodyBytes = 10 * 1024 * 1024

	// AuthorizationHeader carries the relay's bearer token.
	AuthorizationHeader = "Authorization"

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// ParseEnvelope reads and validates the relay envelope from r.
//
// The body is limited to maxBytes (DefaultMaxBodyBytes when zero or
// negative). Every failure is a *types.RequestError.
//
// Example usage:
//
//	env, err := ParseEnvelope(r, cfg.Proxy.MaxBodyBytes)
//	if err != nil {
//	    HandleError(...)
//	    return
//	}
func ParseEnvelope(r *http.Request, maxBytes int64) (*types.Envelope, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, types.NewRequestError(types.CodeInvalidJSON, "body",
			fmt.Sprintf("failed to read request body: %v", err))
	}

	if int64(len(body)) > maxBytes {
		return nil, types.NewRequestError(types.CodeRequestTooLarge, "body",
			fmt.Sprintf("request body exceeds maximum size of %d bytes", maxBytes))
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, types.NewRequestError(types.CodeInvalidJSON, "body", "request body is empty")
	}

	var env types.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, types.NewRequestError(types.CodeInvalidValue, typeErr.Field,
				fmt.Sprintf("invalid type for %s: expected %s", typeErr.Field, typeErr.Type))
		}
		return nil, types.NewRequestError(types.CodeInvalidJSON, "body",
			fmt.Sprintf("invalid JSON: %v", err))
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// ExtractBearerToken extracts the token from an "Authorization: Bearer
// <token>" header. A missing or malformed header yields "".
func ExtractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get(AuthorizationHeader)
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// ExtractRequestID extracts the request ID from the X-Request-ID header.
// If the header is not present, it returns an empty string.
func ExtractRequestID(r *http.Request) string {
	return r.Header.Get(RequestIDHeader)
}
