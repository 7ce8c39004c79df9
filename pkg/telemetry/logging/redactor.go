package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"mercator-hq/courier/pkg/config"
)

// Redactor strips session credentials from log output.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternBearerToken = "bearer_token"
	PatternAuthCookie  = "auth_token_cookie"
	PatternCSRFCookie  = "ct0_cookie"
	PatternCSRFHeader  = "csrf_header"
	PatternPassword    = "password"
)

// redacted replaces sensitive values.
const redacted = "***"

var defaultPatterns = []struct {
	name        string
	regex       string
	replacement string
}{
	{PatternBearerToken, `(?i)Bearer\s+[a-zA-Z0-9\-._~+/%]+=*`, "Bearer ***"},
	{PatternAuthCookie, `auth_token=[^;\s"',&]+`, "auth_token=***"},
	{PatternCSRFCookie, `ct0=[^;\s"',&]+`, "ct0=***"},
	{PatternCSRFHeader, `(?i)(x-csrf-token["']?\s*[:=]\s*["']?)[^\s"',;]+`, "${1}***"},
	{PatternPassword, `(?i)(password|passwd|pwd)[:=]\s*[^\s]+`, "$1: ***"},
}

// NewRedactor creates a Redactor with the built-in patterns followed by the
// custom ones. Invalid custom patterns are skipped; config validation
// rejects them before they get here.
func NewRedactor(customPatterns []config.RedactPattern) *Redactor {
	r := &Redactor{}

	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}

	for _, p := range customPatterns {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}

	return r
}

// RedactString redacts credentials from a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}

	for _, pattern := range r.patterns {
		value = pattern.regex.ReplaceAllString(value, pattern.replacement)
	}
	return value
}

// RedactAttr redacts one slog attribute. Values under sensitive keys are
// replaced outright; other strings and errors are pattern-matched. Groups
// are walked recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		attrs := v.Group()
		out := make([]any, len(attrs))
		for i, ga := range attrs {
			out[i] = r.RedactAttr(ga)
		}
		return slog.Group(a.Key, out...)
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, redacted)
	}

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

var sensitiveKeys = []string{
	"password", "secret", "token", "authorization",
	"cookie", "csrf", "ct0",
}

// isSensitiveKey checks if a key name indicates a credential.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}
