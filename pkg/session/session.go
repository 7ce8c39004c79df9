package session

import (
	"fmt"
	"net/http"
	"strconv"

	"mercator-hq/courier/pkg/transaction"
)

// Header names the relay controls on every outgoing request.
const (
	HeaderAuthType      = "x-twitter-auth-type"
	HeaderCSRF          = "x-csrf-token"
	HeaderCookie        = "cookie"
	HeaderTransactionID = "x-client-transaction-id"

	// AuthTypeSession marks a cookie-authenticated session.
	AuthTypeSession = "OAuth2Session"
)

// Seed extracts the baseline header set from the caller's opaque headers
// value. When it holds an "api" object, that object is the seed;
// otherwise the top-level values are. Non-string scalars are formatted and
// nested values are ignored.
func Seed(headers any) map[string]string {
	doc, ok := headers.(map[string]any)
	if !ok {
		return map[string]string{}
	}
	if api, ok := doc["api"].(map[string]any); ok {
		doc = api
	}

	seed := make(map[string]string, len(doc))
	for k, v := range doc {
		if s, ok := Scalar(v); ok {
			seed[k] = s
		}
	}
	return seed
}

// Scalar formats a JSON scalar as a header or query value.
func Scalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case fmt.Stringer:
		return val.String(), true
	}
	return "", false
}

// Cookie builds the session cookie string from the two tokens.
func Cookie(authToken, csrfToken string) string {
	return "auth_token=" + authToken + "; ct0=" + csrfToken
}

// Merge copies values into h. Later calls win over earlier ones.
func Merge(h http.Header, values map[string]string) {
	for k, v := range values {
		h.Set(k, v)
	}
}

// ApplyAuth overwrites the three authentication headers. It must run after
// every caller-supplied header has been merged so that none of them can
// replace the session credentials.
func ApplyAuth(h http.Header, authToken, csrfToken string) {
	h.Set(HeaderAuthType, AuthTypeSession)
	h.Set(HeaderCSRF, csrfToken)
	h.Set(HeaderCookie, Cookie(authToken, csrfToken))
}

// Headers builds the full outgoing header set for a session.
func Headers(seed map[string]string, authToken, csrfToken string) http.Header {
	h := make(http.Header, len(seed)+3)
	Merge(h, seed)
	ApplyAuth(h, authToken, csrfToken)
	return h
}

// TransactionHook returns a request callback that sets the transaction id
// header from the request's method and path. It returns nil when the seed
// is incomplete, which callers treat as "no hook".
func TransactionHook(gen transaction.Generator, verification, animationKey string) func(*http.Request) {
	if gen == nil || verification == "" || animationKey == "" {
		return nil
	}
	return func(req *http.Request) {
		SetTransactionID(req, gen, verification, animationKey)
	}
}

// SetTransactionID sets or clears the transaction id header on req.
func SetTransactionID(req *http.Request, gen transaction.Generator, verification, animationKey string) {
	if gen == nil {
		return
	}
	token, ok := gen.Generate(req.Method, req.URL.Path, verification, animationKey)
	if !ok {
		req.Header.Del(HeaderTransactionID)
		return
	}
	req.Header.Set(HeaderTransactionID, token)
}
