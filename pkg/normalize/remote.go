package normalize

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RemoteError is a failure reported by the remote platform: a non-2xx
// response, or a 200 response whose body is an error document.
type RemoteError struct {
	// StatusCode is the HTTP status the platform answered with
	StatusCode int

	// StatusText is the reason phrase, e.g. "Too Many Requests"
	StatusText string

	// URL is the request URL, already truncated with its query redacted
	URL string

	// Body is the raw response text
	Body []byte

	// Payload is the parsed response body, nil when it was not JSON
	Payload any

	// Message is "HTTP <status>: <detail>" where detail comes from the
	// platform's own error fields when they could be extracted
	Message string

	// Cause is the client error that carried the response, if any
	Cause error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// NewRemoteError builds a RemoteError from response metadata.
//
// payload may be supplied when the caller already holds a structured body;
// otherwise body is parsed. The URL is passed through TruncateURL and the
// message is upgraded with RemoteDetail when the payload carries one.
func NewRemoteError(status int, statusText, rawURL string, body []byte, payload any, opts Options) *RemoteError {
	opts = opts.withDefaults()

	if statusText == "" {
		statusText = http.StatusText(status)
	}
	if payload == nil {
		payload = parseBody(body)
	}

	message := fmt.Sprintf("HTTP %d: %s", status, statusText)
	if detail, ok := RemoteDetail(payload); ok {
		message = fmt.Sprintf("HTTP %d: %s", status, detail)
	}

	return &RemoteError{
		StatusCode: status,
		StatusText: statusText,
		URL:        TruncateURL(rawURL, opts.URLMaxLength),
		Body:       body,
		Payload:    payload,
		Message:    message,
	}
}

// StatusText strips the numeric prefix from an http.Response Status value.
func StatusText(status string, code int) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}

// RemoteDetail extracts the platform's own error detail from a parsed body.
//
// It recognizes an "errors" list, whose first element supplies the message
// (and code, appended as " (code=N)"), and a single "error" field holding
// either a string or an object with a "message".
func RemoteDetail(payload any) (string, bool) {
	doc, ok := payload.(map[string]any)
	if !ok {
		return "", false
	}

	if list, ok := doc["errors"].([]any); ok && len(list) > 0 {
		if detail, ok := errorEntry(list[0]); ok {
			return detail, true
		}
	}

	switch e := doc["error"].(type) {
	case string:
		if e != "" {
			return withCode(e, doc["code"]), true
		}
	case map[string]any:
		if detail, ok := errorEntry(e); ok {
			return detail, true
		}
	}

	return "", false
}

// errorEntry formats one element of an error list.
func errorEntry(entry any) (string, bool) {
	switch e := entry.(type) {
	case string:
		return e, e != ""
	case map[string]any:
		msg, _ := e["message"].(string)
		if msg == "" {
			return "", false
		}
		return withCode(msg, e["code"]), true
	}
	return "", false
}

func withCode(msg string, code any) string {
	switch c := code.(type) {
	case float64:
		return fmt.Sprintf("%s (code=%s)", msg, strconv.FormatFloat(c, 'f', -1, 64))
	case json.Number:
		return fmt.Sprintf("%s (code=%s)", msg, c.String())
	case string:
		if c != "" {
			return fmt.Sprintf("%s (code=%s)", msg, c)
		}
	}
	return msg
}

// parseBody decodes body as JSON, returning nil when it is empty or not JSON.
func parseBody(body []byte) any {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil
	}
	return v
}
