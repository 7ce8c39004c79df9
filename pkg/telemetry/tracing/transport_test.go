package tracing

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestTransport_RecordsOutboundSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer(t)

	var sawTraceparent bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawTraceparent = r.Header.Get("traceparent") != ""
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, parent := tracer.Start(context.Background(), "dispatch.raw")
	client := WrapClient(srv.Client(), tracer)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/1.1/account/settings.json?x=1", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()
	parent.End()

	if sawTraceparent {
		t.Error("Expected no trace context on platform requests")
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	out := spans[0]
	if out.Name() != "platform GET" {
		t.Errorf("Unexpected span name %q", out.Name())
	}
	if out.SpanKind() != trace.SpanKindClient {
		t.Errorf("Expected client span, got %v", out.SpanKind())
	}
	if out.Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Error("Expected outbound span to be a child of the dispatch span")
	}

	attrs := map[string]string{}
	for _, kv := range out.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrURLPath] != "/1.1/account/settings.json" {
		t.Errorf("Expected path without query, got %q", attrs[AttrURLPath])
	}
	if attrs[AttrStatusCode] != "429" {
		t.Errorf("Expected status 429, got %q", attrs[AttrStatusCode])
	}
	if attrs["error"] != "true" {
		t.Error("Expected error flag on 4xx response")
	}
}

func TestTransport_SpanCoversBody(t *testing.T) {
	tests := []struct {
		name   string
		finish func(io.ReadCloser)
	}{
		{"read to EOF", func(b io.ReadCloser) { _, _ = io.ReadAll(b) }},
		{"closed early", func(b io.ReadCloser) { _ = b.Close() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, recorder := newRecordingTracer(t)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"data":{}}`)
			}))
			defer srv.Close()

			resp, err := WrapClient(srv.Client(), tracer).Get(srv.URL + "/i/api/graphql/q/UserTweets")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			defer resp.Body.Close()

			if n := len(recorder.Ended()); n != 0 {
				t.Fatalf("Expected span to stay open until the body is done, got %d ended", n)
			}

			tt.finish(resp.Body)
			_ = resp.Body.Close()

			if n := len(recorder.Ended()); n != 1 {
				t.Errorf("Expected exactly one ended span, got %d", n)
			}
		})
	}
}

func TestWrapClient_NilTracer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := WrapClient(srv.Client(), nil).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Unexpected status %d", resp.StatusCode)
	}
}
