package normalize

import (
	"strings"
	"testing"
)

func TestTruncateURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		max  int
		want string
	}{
		{
			name: "short without query",
			raw:  "https://api.x.com/1.1/friendships/create.json",
			max:  200,
			want: "https://api.x.com/1.1/friendships/create.json",
		},
		{
			name: "short with query is still redacted",
			raw:  "https://x.com/i/api/graphql/abc/UserByScreenName?variables=%7B%7D",
			max:  200,
			want: "https://x.com/i/api/graphql/abc/UserByScreenName" + RedactedQuery,
		},
		{
			name: "empty",
			raw:  "",
			max:  200,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateURL(tt.raw, tt.max); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncateURL_Long(t *testing.T) {
	secret := "auth_token=supersecretvalue"
	raw := "https://x.com/i/api/graphql/" + strings.Repeat("a", 300) + "/Op?" + secret + "&features=" + strings.Repeat("b", 200)

	got := TruncateURL(raw, 200)

	if len(got) > 200 {
		t.Errorf("expected at most 200 characters, got %d", len(got))
	}
	if !strings.HasSuffix(got, RedactedQuery) {
		t.Errorf("expected redaction marker, got %q", got)
	}
	if strings.Contains(got, secret) || strings.Contains(got, "features=") {
		t.Errorf("query string content leaked: %q", got)
	}
}

func TestTruncateURL_LongPathNoQuery(t *testing.T) {
	raw := "https://api.x.com/" + strings.Repeat("p", 400)

	got := TruncateURL(raw, 200)

	if len(got) != 200 {
		t.Errorf("expected exactly 200 characters, got %d", len(got))
	}
	if !strings.HasSuffix(got, truncatedMarker) {
		t.Errorf("expected truncation marker, got %q", got)
	}
}

func TestTruncateURL_DefaultMax(t *testing.T) {
	raw := "https://api.x.com/" + strings.Repeat("p", 400)
	if got := TruncateURL(raw, 0); len(got) != DefaultURLMaxLength {
		t.Errorf("expected default cap %d, got %d", DefaultURLMaxLength, len(got))
	}
}
