package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mercator-hq/courier/pkg/config"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return NewWithProvider(provider), recorder
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.TracingConfig
		wantErr     bool
		wantEnabled bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name:   "disabled tracing",
			config: &config.TracingConfig{Enabled: false, ServiceName: "test-service"},
		},
		{
			name: "enabled with ratio sampler",
			config: &config.TracingConfig{
				Enabled:     true,
				Sampler:     "ratio",
				SampleRatio: 0.5,
				Endpoint:    "localhost:4317",
				ServiceName: "test-service",
				Insecure:    true,
				Timeout:     time.Second,
			},
			wantEnabled: true,
		},
		{
			name: "invalid sampler",
			config: &config.TracingConfig{
				Enabled:  true,
				Sampler:  "sometimes",
				Endpoint: "localhost:4317",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, err := New(tt.config, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer tracer.Shutdown(context.Background())

			if tracer.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", tracer.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func TestTracer_Nil(t *testing.T) {
	var tracer *Tracer

	ctx, span := tracer.Start(context.Background(), "noop")
	defer span.End()

	if ctx == nil {
		t.Fatal("Expected context")
	}
	if tracer.Enabled() {
		t.Error("nil tracer must not be enabled")
	}
	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestSetErrorAndStatus(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "dispatch.raw")
	err := errors.New("boom")
	SetError(span, err)
	SetStatus(span, err)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("Expected error status, got %v", spans[0].Status())
	}
	if len(spans[0].Events()) == 0 {
		t.Error("Expected recorded error event")
	}
}

func TestSetDispatchAttributes(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "dispatch.method")
	SetDispatchAttributes(span, "method", "getLikes")
	SetStatusCode(span, 200)
	span.End()

	attrs := map[string]string{}
	for _, kv := range recorder.Ended()[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrDispatch] != "method" || attrs[AttrMethod] != "getLikes" {
		t.Errorf("Unexpected attributes %v", attrs)
	}
	if attrs[AttrStatusCode] != "200" {
		t.Errorf("Expected status code attribute, got %v", attrs)
	}
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	var traceID string
	handler := HTTPMiddleware(tracer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/twitter/proxy", nil))

	if traceID == "" {
		t.Fatal("Expected trace id in handler context")
	}
	if rec.Header().Get("X-Trace-ID") != traceID {
		t.Errorf("Expected X-Trace-ID %q, got %q", traceID, rec.Header().Get("X-Trace-ID"))
	}
	if got := recorder.Ended()[0].Name(); got != "POST /api/twitter/proxy" {
		t.Errorf("Unexpected span name %q", got)
	}
}
