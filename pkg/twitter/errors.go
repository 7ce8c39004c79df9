package twitter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUndefinedField means an expected field was absent from an
	// otherwise successful response.
	ErrUndefinedField = errors.New("undefined field")

	// ErrAccessDenied means the response resolved to an entity the session
	// may not see (unavailable user, tombstoned tweet).
	ErrAccessDenied = errors.New("access denied")

	// ErrMissingQueryID means the feature flags carry no query id for an
	// operation.
	ErrMissingQueryID = errors.New("missing query id")
)

// ResponseInfo is the response metadata attached to an APIError.
type ResponseInfo struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Status is the full status line value, e.g. "429 Too Many Requests"
	Status string

	// URL is the full request URL
	URL string

	// Header is the response header
	Header http.Header
}

// ErrorItem is one element of the platform's "errors" list.
type ErrorItem struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Name    string `json:"name,omitempty"`
}

// APIError is returned when the platform answers with a failure: a non-2xx
// status, or a 200 whose body has errors and no data.
type APIError struct {
	// Operation is the operation that failed
	Operation string

	// Response is the response metadata
	Response *ResponseInfo

	// Payload is the parsed response document, nil when it was not JSON
	Payload any

	// Errors is the parsed "errors" list, if any
	Errors []ErrorItem

	// Body is the raw response body
	Body []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := 0
	if e.Response != nil {
		status = e.Response.StatusCode
	}
	if len(e.Errors) > 0 && e.Errors[0].Message != "" {
		return fmt.Sprintf("twitter: %s failed: HTTP %d: %s", e.Operation, status, e.Errors[0].Message)
	}
	return fmt.Sprintf("twitter: %s failed: HTTP %d", e.Operation, status)
}

// DecodeError is returned when a successful response does not have the
// shape an operation expects.
type DecodeError struct {
	// Operation is the operation whose result could not be decoded
	Operation string

	// Path is the dotted path that could not be resolved
	Path string

	// Err is ErrUndefinedField or ErrAccessDenied
	Err error

	// Cause is a lower-level error such as a JSON syntax error
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("twitter: %s: %v", e.Operation, e.Err)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the sentinel and the cause for error chain support.
func (e *DecodeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
