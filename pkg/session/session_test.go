package session

import (
	"net/http"
	"testing"
)

func TestSeed(t *testing.T) {
	tests := []struct {
		name    string
		headers any
		want    map[string]string
	}{
		{
			name: "api object is the seed",
			headers: map[string]any{
				"api":   map[string]any{"authorization": "Bearer AAA", "x-twitter-active-user": "yes"},
				"other": "ignored",
			},
			want: map[string]string{"authorization": "Bearer AAA", "x-twitter-active-user": "yes"},
		},
		{
			name:    "top-level values without api",
			headers: map[string]any{"user-agent": "ua", "x-count": float64(3), "nested": map[string]any{"a": "b"}},
			want:    map[string]string{"user-agent": "ua", "x-count": "3"},
		},
		{
			name:    "not an object",
			headers: "nope",
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Seed(tt.headers)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("expected %s=%q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestHeaders_AuthCannotBeOverridden(t *testing.T) {
	seed := map[string]string{
		"Cookie":              "auth_token=attacker",
		"X-Csrf-Token":        "forged",
		"x-twitter-auth-type": "",
		"authorization":       "Bearer AAA",
	}

	h := Headers(seed, "tok", "csrf")

	if got := h.Get(HeaderCookie); got != "auth_token=tok; ct0=csrf" {
		t.Errorf("expected session cookie, got %q", got)
	}
	if got := h.Get(HeaderCSRF); got != "csrf" {
		t.Errorf("expected csrf header, got %q", got)
	}
	if got := h.Get(HeaderAuthType); got != AuthTypeSession {
		t.Errorf("expected auth type %q, got %q", AuthTypeSession, got)
	}
	if got := h.Get("Authorization"); got != "Bearer AAA" {
		t.Errorf("expected seed header to be kept, got %q", got)
	}
	if n := len(h.Values(HeaderCookie)); n != 1 {
		t.Errorf("expected exactly one cookie header, got %d", n)
	}
}

type stubGenerator struct {
	method, path string
	ok           bool
}

func (g *stubGenerator) Generate(method, path, verification, animationKey string) (string, bool) {
	g.method, g.path = method, path
	if !g.ok {
		return "", false
	}
	return "tx-" + verification + "-" + animationKey, true
}

func TestTransactionHook(t *testing.T) {
	gen := &stubGenerator{ok: true}
	hook := TransactionHook(gen, "v", "a")
	if hook == nil {
		t.Fatal("expected a hook for a complete seed")
	}

	req, _ := http.NewRequest(http.MethodPost, "https://x.com/i/api/graphql/q/CreateTweet?x=1", nil)
	hook(req)

	if got := req.Header.Get(HeaderTransactionID); got != "tx-v-a" {
		t.Errorf("expected transaction id header, got %q", got)
	}
	if gen.method != http.MethodPost || gen.path != "/i/api/graphql/q/CreateTweet" {
		t.Errorf("expected method and path without query, got %s %s", gen.method, gen.path)
	}
}

func TestTransactionHook_Incomplete(t *testing.T) {
	if TransactionHook(&stubGenerator{ok: true}, "", "a") != nil {
		t.Error("expected no hook without verification")
	}
	if TransactionHook(&stubGenerator{ok: true}, "v", "") != nil {
		t.Error("expected no hook without animation key")
	}
	if TransactionHook(nil, "v", "a") != nil {
		t.Error("expected no hook without a generator")
	}
}

func TestSetTransactionID_GeneratorDeclines(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://x.com/i/api/x", nil)
	req.Header.Set(HeaderTransactionID, "stale")

	SetTransactionID(req, &stubGenerator{ok: false}, "v", "a")

	if req.Header.Get(HeaderTransactionID) != "" {
		t.Error("expected header to be omitted when no token is produced")
	}
}
