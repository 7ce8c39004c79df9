package normalize

import (
	"errors"
	"regexp"
	"strconv"
)

const (
	// DefaultURLMaxLength caps URLs surfaced in error details.
	DefaultURLMaxLength = 200

	// DefaultRawBodyMaxLength caps raw response text kept for diagnostics.
	DefaultRawBodyMaxLength = 2000

	// DefaultStatusCode is used when a failure carries no status.
	DefaultStatusCode = 500
)

// Options controls error shaping.
type Options struct {
	URLMaxLength     int
	RawBodyMaxLength int
}

func (o Options) withDefaults() Options {
	if o.URLMaxLength <= 0 {
		o.URLMaxLength = DefaultURLMaxLength
	}
	if o.RawBodyMaxLength <= 0 {
		o.RawBodyMaxLength = DefaultRawBodyMaxLength
	}
	return o
}

// Normalized is the canonical shape of any failure.
type Normalized struct {
	// StatusCode is the remote status, a status found in the message, or 500
	StatusCode int

	// Message is the upgraded error message
	Message string

	// Body is the structured response body, nil when it did not parse
	Body any

	// RawBody is the capped raw response text
	RawBody string

	// StatusText is the remote reason phrase, if known
	StatusText string

	// URL is the truncated and redacted request URL, if known
	URL string
}

var statusPattern = regexp.MustCompile(`HTTP (\d{3})`)

// Normalize reduces any error to a Normalized value. It never fails.
//
// Errors carrying response metadata (*RemoteError anywhere in the chain)
// contribute their status, URL and body. For anything else the status is
// recovered from an "HTTP <digits>" fragment in the message, or defaults
// to 500.
func Normalize(err error, opts Options) Normalized {
	opts = opts.withDefaults()

	if err == nil {
		return Normalized{StatusCode: DefaultStatusCode, Message: "unknown error"}
	}

	var remote *RemoteError
	if !errors.As(err, &remote) {
		return Normalized{
			StatusCode: statusFromMessage(err.Error()),
			Message:    err.Error(),
		}
	}

	n := Normalized{
		StatusCode: remote.StatusCode,
		Message:    remote.Message,
		StatusText: remote.StatusText,
		URL:        remote.URL,
		RawBody:    capString(string(remote.Body), opts.RawBodyMaxLength),
	}
	if n.Message == "" {
		n.Message = err.Error()
	}
	if n.StatusCode == 0 {
		n.StatusCode = statusFromMessage(n.Message)
	}

	payload := remote.Payload
	if payload == nil {
		payload = parseBody(remote.Body)
	}

	switch {
	case payload != nil:
		n.Body = payload
		if detail, ok := RemoteDetail(payload); ok {
			n.Message = "HTTP " + strconv.Itoa(n.StatusCode) + ": " + detail
		}
	case n.RawBody != "":
		n.Message += " | body: " + n.RawBody
	}

	return n
}

// statusFromMessage finds the first "HTTP <digits>" fragment.
func statusFromMessage(msg string) int {
	if m := statusPattern.FindStringSubmatch(msg); m != nil {
		if code, err := strconv.Atoi(m[1]); err == nil {
			return code
		}
	}
	return DefaultStatusCode
}

func capString(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}
