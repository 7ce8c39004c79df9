package tracing

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// Transport is an http.RoundTripper that opens a client span per outbound
// call. The span ends when the response body is fully read or closed, so
// it covers the body transfer. Trace headers are not injected into the
// request.
type Transport struct {
	// Base performs the round trip. nil means http.DefaultTransport.
	Base http.RoundTripper

	// Tracer opens the spans. nil produces noop spans.
	Tracer *Tracer
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	ctx, span := t.Tracer.Start(req.Context(), "platform "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient))

	SetOutboundAttributes(span, req.Method, req.URL.Host, req.URL.Path)

	resp, err := base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		SetError(span, err)
		span.End()
		return nil, err
	}

	SetStatusCode(span, resp.StatusCode)
	if resp.StatusCode >= 400 {
		SetError(span, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		span.End()
		return resp, nil
	}
	resp.Body = &spanBody{ReadCloser: resp.Body, span: span}
	return resp, nil
}

// spanBody ends its span at EOF, on a read error or on Close, whichever
// comes first.
type spanBody struct {
	io.ReadCloser
	span trace.Span
	once sync.Once
}

func (b *spanBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			SetError(b.span, err)
		}
		b.end()
	}
	return n, err
}

func (b *spanBody) Close() error {
	err := b.ReadCloser.Close()
	b.end()
	return err
}

func (b *spanBody) end() {
	b.once.Do(func() { b.span.End() })
}

// WrapClient returns a copy of client whose calls are traced by t.
func WrapClient(client *http.Client, t *Tracer) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}
	c := *client
	c.Transport = &Transport{Base: client.Transport, Tracer: t}
	return &c
}
