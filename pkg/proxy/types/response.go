package types

// SuccessResponse wraps a relay result.
type SuccessResponse struct {
	// Success is always true.
	Success bool `json:"success"`

	// Data is the platform result, possibly null.
	Data any `json:"data"`
}

// FailureResponse is returned for every failed relay call.
type FailureResponse struct {
	// Success is always false.
	Success bool `json:"success"`

	// Error is the normalized error message.
	Error string `json:"error"`

	// StatusCode is the normalized status code. It may fall outside the
	// HTTP error range, in which case the response status is 500.
	StatusCode int `json:"statusCode,omitempty"`

	// Details carries the diagnostics. Omitted for routing and auth failures.
	Details *ErrorDetails `json:"details,omitempty"`
}

// ErrorDetails carries diagnostics for a failed call. URLs are always
// truncated and have their query string redacted.
type ErrorDetails struct {
	// Message is the original error text.
	Message string `json:"message"`

	// Code is the client error code, for client errors.
	Code string `json:"code,omitempty"`

	// Param is the offending envelope field, for client errors.
	Param string `json:"param,omitempty"`

	// Status is the remote HTTP status, when a remote call was made.
	Status int `json:"status,omitempty"`

	// StatusText is the remote HTTP status text.
	StatusText string `json:"statusText,omitempty"`

	// URL is the remote request URL.
	URL string `json:"url,omitempty"`

	// Body is the parsed remote body, or null.
	Body any `json:"body"`

	// RawBody is the capped raw remote body text.
	RawBody string `json:"rawBody,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data any) *SuccessResponse {
	return &SuccessResponse{Success: true, Data: data}
}

// NewNotFoundResponse is the body for unrouted requests.
func NewNotFoundResponse() *FailureResponse {
	return &FailureResponse{Error: "Not Found"}
}

// NewFailureResponse creates a failure envelope.
func NewFailureResponse(message string, statusCode int, details *ErrorDetails) *FailureResponse {
	return &FailureResponse{Error: message, StatusCode: statusCode, Details: details}
}

// HTTPStatusCode returns the response status: StatusCode when it is an
// HTTP error status, else 500.
func (r *FailureResponse) HTTPStatusCode() int {
	if r.StatusCode >= 400 && r.StatusCode <= 599 {
		return r.StatusCode
	}
	return 500
}
