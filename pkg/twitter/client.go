package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/transport"
)

// Default origins of the platform.
const (
	DefaultWebOrigin = "https://x.com"
	DefaultAPIOrigin = "https://api.x.com"
)

// Config configures a Client for one session.
type Config struct {
	// Headers is the complete outgoing header set, credentials included
	Headers http.Header

	// Flags is the caller's feature-flag document. It maps operation
	// names to {queryId, features, variables, fieldToggles}; a top-level
	// "features" object applies to operations that carry none.
	Flags any

	// OnRequest is called on every outgoing request after headers are set
	OnRequest func(*http.Request)

	// HTTPClient performs the calls. nil means http.DefaultClient.
	HTTPClient *http.Client

	// WebOrigin serves the GraphQL surface
	WebOrigin string

	// APIOrigin serves the v1.1 REST surface
	APIOrigin string
}

// Client is a session-scoped platform client. Operations are grouped by
// resource, mirroring the platform's own API layout.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client for one session.
func NewClient(cfg Config) *Client {
	if cfg.WebOrigin == "" {
		cfg.WebOrigin = DefaultWebOrigin
	}
	if cfg.APIOrigin == "" {
		cfg.APIOrigin = DefaultAPIOrigin
	}
	cfg.WebOrigin = strings.TrimRight(cfg.WebOrigin, "/")
	cfg.APIOrigin = strings.TrimRight(cfg.APIOrigin, "/")
	if cfg.Headers == nil {
		cfg.Headers = http.Header{}
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{cfg: cfg, http: hc}
}

// User returns the user lookup operations.
func (c *Client) User() *UserAPI { return &UserAPI{c: c} }

// Tweet returns the tweet and timeline operations.
func (c *Client) Tweet() *TweetAPI { return &TweetAPI{c: c} }

// UserList returns the user list operations.
func (c *Client) UserList() *UserListAPI { return &UserListAPI{c: c} }

// Post returns the write operations.
func (c *Client) Post() *PostAPI { return &PostAPI{c: c} }

// V11 returns the v1.1 REST operations.
func (c *Client) V11() *V11API { return &V11API{c: c} }

// call runs one GraphQL operation and extracts its result.
func (c *Client) call(ctx context.Context, op *operation, params map[string]any) (any, error) {
	spec, err := lookupFlags(c.cfg.Flags, op.name)
	if err != nil {
		return nil, err
	}

	vars := op.variables(spec.Variables, params)
	endpoint := c.cfg.WebOrigin + "/i/api/graphql/" + url.PathEscape(spec.QueryID) + "/" + op.name

	var (
		body        []byte
		contentType string
	)
	if op.method == http.MethodGet {
		q := url.Values{}
		if err := setJSON(q, "variables", vars); err != nil {
			return nil, err
		}
		if spec.Features != nil {
			if err := setJSON(q, "features", spec.Features); err != nil {
				return nil, err
			}
		}
		if spec.FieldToggles != nil {
			if err := setJSON(q, "fieldToggles", spec.FieldToggles); err != nil {
				return nil, err
			}
		}
		endpoint += "?" + q.Encode()
	} else {
		payload := map[string]any{
			"variables": vars,
			"queryId":   spec.QueryID,
		}
		if spec.Features != nil {
			payload["features"] = spec.Features
		}
		if spec.FieldToggles != nil {
			payload["fieldToggles"] = spec.FieldToggles
		}
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("twitter: %s: failed to encode body: %w", op.name, err)
		}
		contentType = "application/json"
	}

	doc, err := c.do(ctx, op.name, op.method, endpoint, body, contentType)
	if err != nil {
		return nil, err
	}
	return op.extract(op.name, doc)
}

// form runs one v1.1 form-encoded POST.
func (c *Client) form(ctx context.Context, name, path string, rename map[string]string, params map[string]any) (any, error) {
	values := url.Values{}
	for k, v := range params {
		if mapped, ok := rename[k]; ok {
			k = mapped
		}
		if s, ok := formValue(v); ok {
			values.Set(k, s)
		}
	}

	doc, err := c.do(ctx, name, http.MethodPost, c.cfg.APIOrigin+path, []byte(values.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// do performs one HTTP exchange and returns the decoded document.
func (c *Client) do(ctx context.Context, name, method, endpoint string, body []byte, contentType string) (any, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("twitter: %s: failed to create request: %w", name, err)
	}
	req.Header = c.cfg.Headers.Clone()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cfg.OnRequest != nil {
		c.cfg.OnRequest(req)
	}

	slog.DebugContext(ctx, "sending platform request",
		"operation", name,
		"method", method,
		"path", req.URL.Path,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error text carries the full query string
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, fmt.Errorf("twitter: %s: request to %s failed: %w",
			name, normalize.TruncateURL(endpoint, 0), err)
	}

	raw, readErr := transport.ReadBody(resp)
	info := &ResponseInfo{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        endpoint,
		Header:     resp.Header,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			raw = nil
		}
		apiErr := &APIError{Operation: name, Response: info, Body: raw}
		apiErr.Payload, apiErr.Errors = parseErrorDocument(raw)
		return nil, apiErr
	}

	if readErr != nil {
		return nil, &DecodeError{Operation: name, Err: ErrUndefinedField, Cause: readErr}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DecodeError{Operation: name, Err: ErrUndefinedField, Cause: err}
	}

	// An error document with no data is a failure even on 200
	if m, ok := doc.(map[string]any); ok {
		if list, ok := m["errors"].([]any); ok && len(list) > 0 && m["data"] == nil {
			apiErr := &APIError{Operation: name, Response: info, Body: raw, Payload: doc}
			_, apiErr.Errors = parseErrorDocument(raw)
			return nil, apiErr
		}
	}

	return doc, nil
}

// parseErrorDocument decodes a failure body, tolerating non-JSON.
func parseErrorDocument(raw []byte) (any, []ErrorItem) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil
	}
	var wrapper struct {
		Errors []ErrorItem `json:"errors"`
	}
	_ = json.Unmarshal(raw, &wrapper)
	return payload, wrapper.Errors
}

func setJSON(q url.Values, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("twitter: failed to encode %s: %w", key, err)
	}
	q.Set(key, string(data))
	return nil
}

func formValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(data), true
	default:
		return fmt.Sprint(val), true
	}
}
