package transport

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// AcceptEncoding lists the content codings the relay can decode.
const AcceptEncoding = "gzip, deflate, zstd"

// UnsupportedEncodingError is returned when the remote answers with a
// content coding the relay cannot decode.
type UnsupportedEncodingError struct {
	// Encoding is the Content-Encoding value received
	Encoding string
}

// Error implements the error interface.
func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported content encoding %q", e.Encoding)
}

// Decoding is an http.RoundTripper that advertises AcceptEncoding and
// transparently decodes compressed response bodies.
//
// Callers forward browser header sets verbatim, which usually include an
// Accept-Encoding listing brotli. The header is replaced on the outgoing
// request so that every response can be decoded.
type Decoding struct {
	// Base performs the actual round trip. nil means http.DefaultTransport.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (d *Decoding) RoundTrip(req *http.Request) (*http.Response, error) {
	base := d.Base
	if base == nil {
		base = http.DefaultTransport
	}

	out := req.Clone(req.Context())
	out.Header.Set("Accept-Encoding", AcceptEncoding)

	resp, err := base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	encoding := resp.Header.Get("Content-Encoding")
	if encoding == "" || resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	body, err := Decode(encoding, resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return resp, nil
}

// Decode wraps r in a decoder for the given Content-Encoding value.
// Closing the returned reader closes r. Identity passes r through.
func Decode(encoding string, r io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return r, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		return &decodedBody{Reader: zr, closers: []func() error{zr.Close, r.Close}}, nil
	case "deflate":
		// HTTP deflate is the zlib format
		fr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to open deflate body: %w", err)
		}
		return &decodedBody{Reader: fr, closers: []func() error{fr.Close, r.Close}}, nil
	case "zstd":
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd body: %w", err)
		}
		return &decodedBody{Reader: zr, closers: []func() error{
			func() error { zr.Close(); return nil },
			r.Close,
		}}, nil
	default:
		return nil, &UnsupportedEncodingError{Encoding: encoding}
	}
}

// decodedBody closes the decoder before the underlying body.
type decodedBody struct {
	io.Reader
	closers []func() error
}

func (b *decodedBody) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ReadBody reads and closes a response body. The body has already been
// decoded by Decoding when the client came from NewClient.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
