package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/takeoff/pkg/auth"
)

type fakeVerifier struct {
	tokens map[string]string
}

func (f fakeVerifier) Verify(_ context.Context, raw string) (string, error) {
	if sub, ok := f.tokens[raw]; ok {
		return sub, nil
	}
	return "", errors.New("unknown token")
}

func TestMiddleware(t *testing.T) {
	verifier := fakeVerifier{tokens: map[string]string{"good": "estimator@example.com"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen string
	handler := auth.Middleware(verifier, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.Subject(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name    string
		method  string
		header  string
		status  int
		subject string
	}{
		{"valid token", "GET", "Bearer good", http.StatusOK, "estimator@example.com"},
		{"lowercase scheme", "GET", "bearer good", http.StatusOK, "estimator@example.com"},
		{"missing header", "GET", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "GET", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "GET", "Bearer ", http.StatusUnauthorized, ""},
		{"rejected token", "GET", "Bearer bad", http.StatusUnauthorized, ""},
		{"preflight passes", "OPTIONS", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(tt.method, "/api/estimates", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if seen != tt.subject {
				t.Errorf("subject: got %q, want %q", seen, tt.subject)
			}
		})
	}
}

func TestSubjectEmptyContext(t *testing.T) {
	if got := auth.Subject(context.Background()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr bool
	}{
		{"disabled needs nothing", auth.Config{}, false},
		{"enabled complete", auth.Config{Enabled: true, Issuer: "https://idp", JWKSURL: "https://idp/keys", ClientID: "takeoff"}, false},
		{"enabled without issuer", auth.Config{Enabled: true, JWKSURL: "https://idp/keys", ClientID: "takeoff"}, true},
		{"enabled without jwks", auth.Config{Enabled: true, Issuer: "https://idp", ClientID: "takeoff"}, true},
		{"enabled without client id", auth.Config{Enabled: true, Issuer: "https://idp", JWKSURL: "https://idp/keys"}, true},
		{"client id check skipped", auth.Config{Enabled: true, Issuer: "https://idp", JWKSURL: "https://idp/keys", SkipClientIDCheck: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("err: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("TEST_AUTH_ENABLED", "true")
	t.Setenv("TEST_AUTH_ISSUER", "https://login.example.com")
	t.Setenv("TEST_AUTH_JWKS_URL", "https://login.example.com/keys")
	t.Setenv("TEST_AUTH_CLIENT_ID", "takeoff-api")

	var cfg auth.Config
	err := cfg.Finalize(&auth.Env{
		Enabled:  "TEST_AUTH_ENABLED",
		Issuer:   "TEST_AUTH_ISSUER",
		JWKSURL:  "TEST_AUTH_JWKS_URL",
		ClientID: "TEST_AUTH_CLIENT_ID",
	})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if !cfg.Enabled || cfg.ClientID != "takeoff-api" || cfg.JWKSURL != "https://login.example.com/keys" {
		t.Errorf("env not applied: %+v", cfg)
	}
}
