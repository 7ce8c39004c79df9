package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/courier/pkg/config"
	"mercator-hq/courier/pkg/dispatch"
	"mercator-hq/courier/pkg/normalize"
	"mercator-hq/courier/pkg/proxy/types"
	"mercator-hq/courier/pkg/telemetry/metrics"
	"mercator-hq/courier/pkg/transport"

	"github.com/prometheus/client_golang/prometheus"
)

// stubRelay returns a fixed result and records the envelope it saw.
type stubRelay struct {
	data  any
	err   error
	calls int
	env   *types.Envelope
}

func (s *stubRelay) Execute(ctx context.Context, env *types.Envelope) (any, error) {
	s.calls++
	s.env = env
	return s.data, s.err
}

const validMethodBody = `{
	"authToken": "auth-1",
	"csrfToken": "csrf-1",
	"headers": {"api": {}},
	"featureFlags": {"UserByScreenName": {"queryId": "qUser"}, "UserTweets": {"queryId": "qTweets"}},
	"methodName": "getUserByScreenName",
	"methodParams": {"screenName": "jack"}
}`

func newRelayHandler(relay Relay, registry *prometheus.Registry) *RelayHandler {
	cfg := config.Default()
	return NewRelayHandler(RelayConfig{
		Relay:        relay,
		MaxBodyBytes: 1024,
		Errors: normalize.Options{
			URLMaxLength:     cfg.Errors.URLMaxLength,
			RawBodyMaxLength: cfg.Errors.RawBodyMaxLength,
		},
		Metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, registry),
	})
}

func serve(h http.Handler, method, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, "/api/twitter/proxy", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestRelayHandler_Success(t *testing.T) {
	relay := &stubRelay{data: map[string]any{"id": "12"}}
	registry := prometheus.NewRegistry()
	h := newRelayHandler(relay, registry)

	w, body := serve(h, http.MethodPost, validMethodBody)

	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %d, want 200", w.Code)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	data, _ := body["data"].(map[string]any)
	if data["id"] != "12" {
		t.Errorf("data = %v", body["data"])
	}
	if relay.env == nil || relay.env.MethodName != "getUserByScreenName" {
		t.Errorf("relay saw %#v", relay.env)
	}

	got := counterValue(t, registry, "courier_relay_requests_total", "method", "success")
	if got != 1 {
		t.Errorf("requests_total{method,success} = %v, want 1", got)
	}
}

func TestRelayHandler_ClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantParam  string
	}{
		{
			name:       "invalid JSON",
			body:       `{"authToken":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   types.CodeInvalidJSON,
		},
		{
			name:       "missing csrf token",
			body:       `{"authToken":"a","headers":{},"featureFlags":{},"methodName":"getUserByScreenName"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   types.CodeMissingField,
			wantParam:  "csrfToken",
		},
		{
			name:       "both dispatch targets",
			body:       `{"authToken":"a","csrfToken":"c","headers":{},"featureFlags":{},"methodName":"m","endpointPath":"/x"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   types.CodeAmbiguousDispatchTarget,
		},
		{
			name:       "body too large",
			body:       `{"authToken":"` + strings.Repeat("a", 2048) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   types.CodeRequestTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &stubRelay{}
			registry := prometheus.NewRegistry()
			h := newRelayHandler(relay, registry)

			w, body := serve(h, http.MethodPost, tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantStatus)
			}
			if relay.calls != 0 {
				t.Error("relay must not run for client errors")
			}
			details, _ := body["details"].(map[string]any)
			if details["code"] != tt.wantCode {
				t.Errorf("details.code = %v, want %s", details["code"], tt.wantCode)
			}
			if tt.wantParam != "" && details["param"] != tt.wantParam {
				t.Errorf("details.param = %v, want %s", details["param"], tt.wantParam)
			}

			got := counterValue(t, registry, "courier_relay_requests_total", "none", "client_error")
			if got != 1 {
				t.Errorf("requests_total{none,client_error} = %v, want 1", got)
			}
		})
	}
}

func TestRelayHandler_RemoteError(t *testing.T) {
	remote := normalize.NewRemoteError(http.StatusForbidden, "Forbidden",
		"https://api.x.com/1.1/account/settings.json?x=1", []byte(`{"errors":[{"message":"nope","code":200}]}`),
		map[string]any{"errors": []any{map[string]any{"message": "nope", "code": float64(200)}}},
		normalize.Options{})
	relay := &stubRelay{err: remote}
	registry := prometheus.NewRegistry()
	h := newRelayHandler(relay, registry)

	body := `{"authToken":"a","csrfToken":"c","headers":{},"featureFlags":{},"endpointPath":"/1.1/account/settings.json"}`
	w, decoded := serve(h, http.MethodPost, body)

	if w.Code != http.StatusForbidden {
		t.Errorf("Status code = %d, want 403", w.Code)
	}
	if decoded["statusCode"] != float64(http.StatusForbidden) {
		t.Errorf("statusCode = %v", decoded["statusCode"])
	}
	details, _ := decoded["details"].(map[string]any)
	if details["statusText"] != "Forbidden" {
		t.Errorf("details.statusText = %v", details["statusText"])
	}
	if url, _ := details["url"].(string); !strings.HasSuffix(url, "?[redacted]") {
		t.Errorf("details.url = %q, want redacted query", url)
	}

	if got := counterValue(t, registry, "courier_relay_requests_total", "raw", "remote_error"); got != 1 {
		t.Errorf("requests_total{raw,remote_error} = %v, want 1", got)
	}
	if got := counterValue(t, registry, "courier_relay_upstream_errors_total", "raw", "403"); got != 1 {
		t.Errorf("upstream_errors_total{raw,403} = %v, want 1", got)
	}
}

func TestRelayHandler_UnexpectedError(t *testing.T) {
	relay := &stubRelay{err: errors.New("dial tcp: connection refused")}
	h := newRelayHandler(relay, prometheus.NewRegistry())

	w, body := serve(h, http.MethodPost, validMethodBody)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want 500", w.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
}

func TestRelayHandler_NonPostIsNotFound(t *testing.T) {
	relay := &stubRelay{}
	h := newRelayHandler(relay, prometheus.NewRegistry())

	w, body := serve(h, http.MethodGet, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("Status code = %d, want 404", w.Code)
	}
	if body["error"] != "Not Found" {
		t.Errorf("error = %v", body["error"])
	}
	if relay.calls != 0 {
		t.Error("relay must not run")
	}
}

func TestRelayHandler_EmptyResultOutcome(t *testing.T) {
	platform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"user":{"result":{"__typename":"User"}}}}`)
	}))
	defer platform.Close()

	cfg := config.Default()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)

	d := dispatch.New(dispatch.Config{
		HTTPClient: transport.NewClient(transport.Config{Timeout: cfg.Platform.Timeout}),
		WebOrigin:  platform.URL,
		APIOrigin:  platform.URL,
		Invoker: dispatch.NewInvoker(dispatch.InvokerConfig{
			Policy:  dispatch.NewEmptyResultPolicy(cfg.Errors.EmptyResult),
			Metrics: collector,
		}),
	})
	h := NewRelayHandler(RelayConfig{Relay: d, Metrics: collector})

	body := strings.Replace(validMethodBody, `"getUserByScreenName"`, `"getUserTweets"`, 1)
	body = strings.Replace(body, `{"screenName": "jack"}`, `{"userId": "12"}`, 1)
	w, decoded := serve(h, http.MethodPost, body)

	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %d, want 200: %s", w.Code, w.Body.String())
	}
	data, _ := decoded["data"].(map[string]any)
	if items, ok := data["items"].([]any); !ok || len(items) != 0 {
		t.Errorf("data = %v, want empty page", decoded["data"])
	}

	if got := counterValue(t, registry, "courier_relay_requests_total", "method", "empty"); got != 1 {
		t.Errorf("requests_total{method,empty} = %v, want 1", got)
	}
}

// counterValue returns one labelled series of a counter vector. Label
// values are given in label-name order.
func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels ...string) float64 {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			values := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				values = append(values, l.GetValue())
			}
			if strings.Join(values, ",") == strings.Join(labels, ",") {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("series %s%v not found", name, labels)
	return 0
}
