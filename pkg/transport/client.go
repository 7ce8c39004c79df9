package transport

import (
	"net/http"
	"time"
)

// Config contains outbound transport settings.
type Config struct {
	// Timeout bounds a whole outbound call including the body read.
	// Zero means no client-side limit.
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum number of idle connections per host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool.
	IdleConnTimeout time.Duration
}

// NewClient creates the shared outbound HTTP client.
//
// The client pools keep-alive connections, attempts HTTP/2, and decodes
// compressed response bodies (see Decoding). It is safe for concurrent use
// and is shared by every request the relay handles.
func NewClient(cfg Config) *http.Client {
	// Create HTTP transport with connection pooling
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		// Encoding is negotiated by Decoding so that zstd is understood too
		DisableCompression: true,
		ForceAttemptHTTP2:  true,
	}

	return &http.Client{
		Transport: &Decoding{Base: base},
		Timeout:   cfg.Timeout,
	}
}

// WithCapture returns a copy of client whose transport records the last
// response into capture. The copy shares the underlying connection pool.
func WithCapture(client *http.Client, capture *Capture) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}
	c := *client
	capture.Base = client.Transport
	c.Transport = capture
	return &c
}
