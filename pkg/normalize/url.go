package normalize

import "strings"

const (
	// RedactedQuery replaces the query string of every surfaced URL.
	RedactedQuery = "?[redacted]"

	truncatedMarker = "...[truncated]"
)

// TruncateURL prepares a request URL for inclusion in an error payload.
//
// The query string is always replaced by RedactedQuery because platform
// query strings carry session-bound variables. The result is then capped at
// max characters by shortening the path.
func TruncateURL(raw string, max int) string {
	if raw == "" {
		return ""
	}
	if max <= 0 {
		max = DefaultURLMaxLength
	}

	base, _, hasQuery := strings.Cut(raw, "?")
	base, _, _ = strings.Cut(base, "#")

	suffix := ""
	if hasQuery {
		suffix = RedactedQuery
	}
	if len(base)+len(suffix) <= max {
		return base + suffix
	}

	keep := max - len(suffix) - len(truncatedMarker)
	if keep < 0 {
		keep = 0
	}
	return base[:keep] + truncatedMarker + suffix
}
