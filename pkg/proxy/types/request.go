package types

import (
	"encoding/json"
	"net/http"
)

// Envelope is the relay request body. Credentials and session material are
// supplied by the caller on every call and never persisted.
//
// Exactly one of MethodName (packaged path) or EndpointPath (raw path) must
// be set.
type Envelope struct {
	// AuthToken is the session auth token, sent as the auth_token cookie.
	AuthToken string `json:"authToken"`

	// CSRFToken is the session CSRF token, sent as the ct0 cookie and the
	// x-csrf-token header.
	CSRFToken string `json:"csrfToken"`

	// Headers is the caller's baseline header document. Its "api" entry seeds
	// outgoing headers.
	Headers any `json:"headers"`

	// FeatureFlags is passed through to the platform client unmodified.
	FeatureFlags any `json:"featureFlags"`

	// TransactionSeed enables the transaction id header when complete.
	TransactionSeed *TransactionSeed `json:"transactionSeed,omitempty"`

	// MethodName selects a packaged method.
	MethodName string `json:"methodName,omitempty"`

	// MethodParams are the packaged method parameters.
	MethodParams map[string]any `json:"methodParams,omitempty"`

	// APIParams is accepted as an alias of MethodParams.
	APIParams map[string]any `json:"apiParams,omitempty"`

	// EndpointPath selects the raw path, e.g. "/1.1/account/settings.json".
	EndpointPath string `json:"endpointPath,omitempty"`

	// HTTPMethod is the raw request method. Defaults to POST when a request
	// body is present and GET otherwise.
	HTTPMethod string `json:"httpMethod,omitempty"`

	// QueryParams are serialized into the raw request URL. Null values are
	// omitted.
	QueryParams map[string]any `json:"queryParams,omitempty"`

	// RequestBody is the raw request body. A JSON string is sent verbatim,
	// any other value is sent as JSON.
	RequestBody json.RawMessage `json:"requestBody,omitempty"`

	// ExtraHeaders are merged over the header seed on the raw path.
	ExtraHeaders map[string]any `json:"extraHeaders,omitempty"`
}

// TransactionSeed holds the two values the transaction id is derived from.
type TransactionSeed struct {
	Verification string `json:"verification"`
	AnimationKey string `json:"animationKey"`
}

// Complete reports whether both seed values are present.
func (s *TransactionSeed) Complete() bool {
	return s != nil && s.Verification != "" && s.AnimationKey != ""
}

// Params returns the packaged method parameters, preferring MethodParams
// over the APIParams alias.
func (e *Envelope) Params() map[string]any {
	if e.MethodParams != nil {
		return e.MethodParams
	}
	return e.APIParams
}

// HasBody reports whether a raw request body was supplied. An explicit JSON
// null counts as absent.
func (e *Envelope) HasBody() bool {
	return len(e.RequestBody) > 0 && string(e.RequestBody) != "null"
}

// Method returns the raw request method with its default applied.
func (e *Envelope) Method() string {
	if e.HTTPMethod != "" {
		return e.HTTPMethod
	}
	if e.HasBody() {
		return http.MethodPost
	}
	return http.MethodGet
}

// Validate checks the envelope invariants. It returns a *RequestError
// describing the first violation.
func (e *Envelope) Validate() error {
	if e.AuthToken == "" {
		return NewRequestError(CodeMissingField, "authToken", "authToken is required")
	}

	if e.CSRFToken == "" {
		return NewRequestError(CodeMissingField, "csrfToken", "csrfToken is required")
	}

	if e.Headers == nil {
		return NewRequestError(CodeMissingField, "headers", "headers is required")
	}

	if e.FeatureFlags == nil {
		return NewRequestError(CodeMissingField, "featureFlags", "featureFlags is required")
	}

	switch {
	case e.MethodName != "" && e.EndpointPath != "":
		return NewRequestError(CodeAmbiguousDispatchTarget, "methodName",
			"methodName and endpointPath are mutually exclusive")
	case e.MethodName == "" && e.EndpointPath == "":
		return NewRequestError(CodeMissingDispatchTarget, "methodName",
			"either methodName or endpointPath is required")
	}

	if e.EndpointPath != "" && e.EndpointPath[0] != '/' {
		return NewRequestError(CodeInvalidValue, "endpointPath", "endpointPath must start with /")
	}

	return nil
}
