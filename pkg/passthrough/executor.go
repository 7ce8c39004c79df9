package passthrough

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"mercator-hq/courier/pkg/config"
	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/session"
	"mercator-hq/courier/pkg/telemetry/tracing"
	"mercator-hq/courier/pkg/transaction"
	"mercator-hq/courier/pkg/transport"
)

// Config configures an Executor.
type Config struct {
	// HTTPClient is the shared outbound client. nil means http.DefaultClient.
	HTTPClient *http.Client

	// WebOrigin serves paths under InternalPrefix
	WebOrigin string

	// APIOrigin serves every other path
	APIOrigin string

	// InternalPrefix selects the web origin. Default: "/i/api/"
	InternalPrefix string

	// Generator computes transaction ids. nil means transaction.Keyed.
	Generator transaction.Generator

	// Errors controls remote error shaping
	Errors normalize.Options

	// Tracer is optional
	Tracer *tracing.Tracer

	// Logger is optional
	Logger *slog.Logger
}

// Executor forwards raw requests to the platform with session
// credentials attached.
type Executor struct {
	client         *http.Client
	webOrigin      string
	apiOrigin      string
	internalPrefix string
	generator      transaction.Generator
	errors         normalize.Options
	logger         *slog.Logger
}

// New creates an Executor.
func New(cfg Config) *Executor {
	if cfg.WebOrigin == "" {
		cfg.WebOrigin = config.DefaultWebOrigin
	}
	if cfg.APIOrigin == "" {
		cfg.APIOrigin = config.DefaultAPIOrigin
	}
	if cfg.InternalPrefix == "" {
		cfg.InternalPrefix = config.DefaultInternalPrefix
	}
	if cfg.Generator == nil {
		cfg.Generator = &transaction.Keyed{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Executor{
		client:         tracing.WrapClient(cfg.HTTPClient, cfg.Tracer),
		webOrigin:      strings.TrimRight(cfg.WebOrigin, "/"),
		apiOrigin:      strings.TrimRight(cfg.APIOrigin, "/"),
		internalPrefix: cfg.InternalPrefix,
		generator:      cfg.Generator,
		errors:         cfg.Errors,
		logger:         cfg.Logger,
	}
}

// Execute performs the raw call described by env.
//
// A 2xx response yields the parsed JSON body, nil for an empty body, or
// the text itself when the body is not JSON. Any other status yields a
// *normalize.RemoteError.
func (e *Executor) Execute(ctx context.Context, env *types.Envelope) (any, error) {
	if env.CSRFToken == "" {
		return nil, types.NewRequestError(types.CodeMissingCSRF, "csrfToken",
			"csrfToken is required for raw requests")
	}
	if !strings.HasPrefix(env.EndpointPath, "/") {
		return nil, types.NewRequestError(types.CodeInvalidValue, "endpointPath", "endpointPath must start with /")
	}

	target, err := e.targetURL(env.EndpointPath, env.QueryParams)
	if err != nil {
		return nil, types.NewRequestError(types.CodeInvalidValue, "endpointPath", err.Error())
	}

	body, err := requestBody(env.RequestBody)
	if err != nil {
		return nil, types.NewRequestError(types.CodeInvalidValue, "requestBody", err.Error())
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(env.Method()), target, bodyReader)
	if err != nil {
		return nil, types.NewRequestError(types.CodeInvalidValue, "httpMethod", fmt.Sprintf("failed to create request: %v", err))
	}

	req.Header = Headers(env)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if env.TransactionSeed.Complete() {
		session.SetTransactionID(req, e.generator, env.TransactionSeed.Verification, env.TransactionSeed.AnimationKey)
	}

	e.logger.DebugContext(ctx, "sending raw request",
		"http_method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
	)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("raw request to %s failed: %w",
			normalize.TruncateURL(target, e.errors.URLMaxLength), unwrapURLError(err))
	}

	data, readErr := transport.ReadBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			data = nil
		}
		return nil, normalize.NewRemoteError(resp.StatusCode, normalize.StatusText(resp.Status, resp.StatusCode),
			target, data, nil, e.errors)
	}

	if readErr != nil {
		return nil, fmt.Errorf("failed to read raw response: %w", readErr)
	}
	return parseResponse(data), nil
}

// Headers builds the outgoing header set: the caller's seed, then the
// extra headers, then the session credentials, which always win.
func Headers(env *types.Envelope) http.Header {
	h := http.Header{}
	session.Merge(h, session.Seed(env.Headers))

	extra := make(map[string]string, len(env.ExtraHeaders))
	for k, v := range env.ExtraHeaders {
		if s, ok := session.Scalar(v); ok {
			extra[k] = s
		}
	}
	session.Merge(h, extra)

	session.ApplyAuth(h, env.AuthToken, env.CSRFToken)
	return h
}

// Origin returns the origin serving path.
func (e *Executor) Origin(path string) string {
	if strings.HasPrefix(path, e.internalPrefix) {
		return e.webOrigin
	}
	return e.apiOrigin
}

func (e *Executor) targetURL(path string, params map[string]any) (string, error) {
	u, err := url.Parse(e.Origin(path) + path)
	if err != nil {
		return "", fmt.Errorf("invalid endpointPath: %w", err)
	}

	q := u.Query()
	for k, v := range params {
		s, ok, err := queryValue(v)
		if err != nil {
			return "", fmt.Errorf("query parameter %q: %w", k, err)
		}
		if ok {
			q.Set(k, s)
		}
	}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// queryValue serializes one query parameter. Null values are omitted.
func queryValue(v any) (string, bool, error) {
	if v == nil {
		return "", false, nil
	}
	if s, ok := session.Scalar(v); ok {
		return s, true, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// requestBody returns the bytes to send. A JSON string is sent as its
// text; anything else is sent as the JSON it already is.
func requestBody(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("invalid requestBody: %w", err)
		}
		return []byte(s), nil
	}
	return trimmed, nil
}

func parseResponse(data []byte) any {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the
// full request URL including the query string.
func unwrapURLError(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return ue.Err
	}
	return err
}
