package types

import "net/http"

// Client error codes. A client error is detected before any remote call
// and is never retried.
const (
	// CodeInvalidJSON indicates the request body is not valid JSON.
	CodeInvalidJSON = "invalid_json"

	// CodeMissingField indicates a required envelope field is missing.
	CodeMissingField = "missing_field"

	// CodeInvalidValue indicates a field has an invalid value.
	CodeInvalidValue = "invalid_value"

	// CodeAmbiguousDispatchTarget indicates both methodName and endpointPath
	// were supplied.
	CodeAmbiguousDispatchTarget = "ambiguous_dispatch_target"

	// CodeMissingDispatchTarget indicates neither methodName nor endpointPath
	// was supplied.
	CodeMissingDispatchTarget = "missing_dispatch_target"

	// CodeUnsupportedMethod indicates an unknown packaged method name.
	CodeUnsupportedMethod = "unsupported_method"

	// CodeMissingCSRF indicates the raw path was called without a CSRF token.
	CodeMissingCSRF = "missing_csrf"

	// CodeRequestTooLarge indicates the request payload is too large.
	CodeRequestTooLarge = "request_too_large"
)

// RequestError is a client error in the relay request.
type RequestError struct {
	// Code is one of the Code* constants
	Code string

	// Param names the offending envelope field, if any
	Param string

	// Message is the human-readable description
	Message string
}

// NewRequestError creates a RequestError.
func NewRequestError(code, param, message string) *RequestError {
	return &RequestError{Code: code, Param: param, Message: message}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// HTTPStatusCode returns the response status for the error code.
func (e *RequestError) HTTPStatusCode() int {
	switch e.Code {
	case CodeMissingCSRF:
		return http.StatusUnauthorized
	case CodeRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}
