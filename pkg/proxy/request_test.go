package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mercator-hq/courier/pkg/proxy/types"
)

const validEnvelope = `{
	"authToken": "auth-1",
	"csrfToken": "csrf-1",
	"headers": {"api": {"authorization": "Bearer app"}},
	"featureFlags": {"features": {}},
	"methodName": "getUserByScreenName",
	"methodParams": {"screenName": "jack"}
}`

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		maxBytes  int64
		wantErr   bool
		wantCode  string
		wantParam string
	}{
		{
			name: "valid method envelope",
			body: validEnvelope,
		},
		{
			name: "valid raw envelope with string body",
			body: `{"authToken":"a","csrfToken":"c","headers":{},"featureFlags":{},"endpointPath":"/1.1/account/settings.json","requestBody":"a=b"}`,
		},
		{
			name:     "empty request body",
			body:     "",
			wantErr:  true,
			wantCode: types.CodeInvalidJSON,
		},
		{
			name:     "invalid JSON",
			body:     "invalid json",
			wantErr:  true,
			wantCode: types.CodeInvalidJSON,
		},
		{
			name:      "wrong field type",
			body:      `{"authToken": 42}`,
			wantErr:   true,
			wantCode:  types.CodeInvalidValue,
			wantParam: "authToken",
		},
		{
			name:      "missing auth token",
			body:      `{"csrfToken":"c","headers":{},"featureFlags":{},"methodName":"m"}`,
			wantErr:   true,
			wantCode:  types.CodeMissingField,
			wantParam: "authToken",
		},
		{
			name:      "missing feature flags",
			body:      `{"authToken":"a","csrfToken":"c","headers":{},"methodName":"m"}`,
			wantErr:   true,
			wantCode:  types.CodeMissingField,
			wantParam: "featureFlags",
		},
		{
			name:     "no dispatch target",
			body:     `{"authToken":"a","csrfToken":"c","headers":{},"featureFlags":{}}`,
			wantErr:  true,
			wantCode: types.CodeMissingDispatchTarget,
		},
		{
			name:      "relative endpoint path",
			body:      `{"authToken":"a","csrfToken":"c","headers":{},"featureFlags":{},"endpointPath":"1.1/x.json"}`,
			wantErr:   true,
			wantCode:  types.CodeInvalidValue,
			wantParam: "endpointPath",
		},
		{
			name:     "body over limit",
			body:     validEnvelope,
			maxBytes: 16,
			wantErr:  true,
			wantCode: types.CodeRequestTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/twitter/proxy", strings.NewReader(tt.body))

			got, err := ParseEnvelope(req, tt.maxBytes)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEnvelope() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if got == nil {
					t.Error("ParseEnvelope() returned nil without error")
				}
				return
			}

			var reqErr *types.RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("Expected *types.RequestError, got %T", err)
			}
			if reqErr.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", reqErr.Code, tt.wantCode)
			}
			if tt.wantParam != "" && reqErr.Param != tt.wantParam {
				t.Errorf("Param = %v, want %v", reqErr.Param, tt.wantParam)
			}
		})
	}
}

func TestParseEnvelope_Fields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/twitter/proxy", strings.NewReader(validEnvelope))

	env, err := ParseEnvelope(req, 0)
	if err != nil {
		t.Fatalf("ParseEnvelope() error = %v", err)
	}

	if env.AuthToken != "auth-1" || env.CSRFToken != "csrf-1" {
		t.Errorf("tokens = %q/%q", env.AuthToken, env.CSRFToken)
	}
	if env.Params()["screenName"] != "jack" {
		t.Errorf("params = %v", env.Params())
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := ExtractBearerToken(req); got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
