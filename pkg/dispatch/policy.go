package dispatch

import (
	"errors"
	"net/http"
	"strings"

	"mercator-hq/courier/pkg/config"
	"mercator-hq/courier/pkg/transport"
	"mercator-hq/courier/pkg/twitter"
)

// EmptyResultPolicy decides when a decode failure of the platform client
// is really an empty dataset.
//
// The client's decoder fails on some legitimately empty results (a user
// with no tweets, a timeline with no entries) the same way it fails on a
// malformed one. The policy reclassifies a failure as "empty" only when all
// three checks pass, in order:
//
//  1. the error matches a crash signature: twitter.ErrUndefinedField,
//     twitter.ErrAccessDenied, or a configured message substring;
//  2. the captured raw response exists and has status 200;
//  3. the captured body contains none of the error markers, each matched
//     as a quoted JSON token, case-insensitively.
//
// Everything else fails normally. The check is pattern matching on the
// client's failure shape and can be switched off through
// errors.empty_result.enabled.
type EmptyResultPolicy struct {
	enabled    bool
	signatures []string
	markers    []string
}

// NewEmptyResultPolicy creates a policy from configuration.
func NewEmptyResultPolicy(cfg config.EmptyResultConfig) *EmptyResultPolicy {
	p := &EmptyResultPolicy{enabled: cfg.IsEnabled()}
	for _, s := range cfg.CrashSignatures {
		if s != "" {
			p.signatures = append(p.signatures, strings.ToLower(s))
		}
	}
	for _, m := range cfg.Markers {
		if m != "" {
			p.markers = append(p.markers, `"`+strings.ToLower(m)+`"`)
		}
	}
	return p
}

// Applies reports whether err, raised for the response last, should be
// answered with an empty result. A nil policy never applies.
func (p *EmptyResultPolicy) Applies(err error, last *transport.Response) bool {
	if p == nil || !p.enabled || err == nil {
		return false
	}
	if !p.crashSignature(err) {
		return false
	}
	if last == nil || last.StatusCode != http.StatusOK || last.ReadErr != nil {
		return false
	}
	return !p.hasMarker(last.Body)
}

func (p *EmptyResultPolicy) crashSignature(err error) bool {
	if errors.Is(err, twitter.ErrUndefinedField) || errors.Is(err, twitter.ErrAccessDenied) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range p.signatures {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (p *EmptyResultPolicy) hasMarker(body []byte) bool {
	text := strings.ToLower(string(body))
	for _, m := range p.markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
