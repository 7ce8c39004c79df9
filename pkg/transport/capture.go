package transport

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Response is a recorded raw response.
type Response struct {
	StatusCode int
	Status     string
	URL        string
	Body       []byte

	// ReadErr is set when the body could not be read in full.
	ReadErr error
}

// Capture is an http.RoundTripper that keeps a copy of the most recent
// response. It runs alongside the platform client so that failures raised
// while decoding a response can be checked against what was actually
// received.
//
// A Capture belongs to a single relay request.
type Capture struct {
	// Base performs the actual round trip. nil means http.DefaultTransport.
	Base http.RoundTripper

	mu   sync.Mutex
	last *Response
}

// RoundTrip implements http.RoundTripper.
func (c *Capture) RoundTrip(req *http.Request) (*http.Response, error) {
	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	rec := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        req.URL.String(),
	}
	if resp.Body != nil {
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		rec.Body = data
		rec.ReadErr = readErr
		resp.Body = io.NopCloser(bytes.NewReader(data))
	}

	c.mu.Lock()
	c.last = rec
	c.mu.Unlock()

	return resp, nil
}

// Last returns the most recent response, or nil if none was received.
func (c *Capture) Last() *Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
