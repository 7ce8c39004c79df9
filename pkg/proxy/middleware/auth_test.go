package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAuthMiddleware(t *testing.T) {
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
		wantReach  bool
	}{
		{"valid token", "secret", "Bearer secret", http.StatusOK, true},
		{"scheme is case-insensitive", "secret", "bearer secret", http.StatusOK, true},
		{"wrong token", "secret", "Bearer nope", http.StatusUnauthorized, false},
		{"missing header", "secret", "", http.StatusUnauthorized, false},
		{"wrong scheme", "secret", "Basic secret", http.StatusUnauthorized, false},
		{"empty bearer value", "secret", "Bearer ", http.StatusUnauthorized, false},
		{"token prefix only", "secret", "Bearer secre", http.StatusUnauthorized, false},
		{"server token unset", "", "Bearer anything", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			handler := AuthMiddleware(tt.token)(next)

			req := httptest.NewRequest(http.MethodPost, "/api/twitter/proxy", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if reached != tt.wantReach {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantReach)
			}
			if tt.wantReach {
				return
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if body["statusCode"] != float64(tt.wantStatus) {
				t.Errorf("statusCode = %v, want %d", body["statusCode"], tt.wantStatus)
			}
		})
	}
}
