package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookquest/bookquest/internal/auth"
	"github.com/bookquest/bookquest/internal/model"
)

func testTokens(t *testing.T) *auth.Tokens {
	t.Helper()
	tokens, err := auth.NewTokens("middleware-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	return tokens
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := testTokens(t)
	raw, err := tokens.Issue("user-1", model.RoleCreator)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var seen *model.AuthContext
	handler := Auth(AuthConfig{Logger: discardLogger(), Tokens: tokens})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = auth.AuthFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	for _, header := range []struct {
		name  string
		key   string
		value string
	}{
		{name: "authentication header", key: "Authentication", value: raw},
		{name: "authentication with bearer prefix", key: "Authentication", value: "Bearer " + raw},
		{name: "authorization bearer fallback", key: "Authorization", value: "Bearer " + raw},
	} {
		t.Run(header.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(header.key, header.value)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if seen == nil {
				t.Fatal("auth context not injected")
			}
			if seen.UserID != "user-1" || seen.Role != model.RoleCreator {
				t.Errorf("auth context = %+v", seen)
			}
		})
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	tokens := testTokens(t)
	handler := Auth(AuthConfig{Logger: discardLogger(), Tokens: tokens})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be reached")
		}))

	testCases := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "malformed token", token: "not-a-token"},
		{name: "tampered token", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0.bogus"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set("Authentication", tc.token)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	t.Parallel()

	tokens := testTokens(t)
	other, err := auth.NewTokens("unrelated-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	raw, err := other.Issue("user-1", model.RoleViewer)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := Auth(AuthConfig{Logger: discardLogger(), Tokens: tokens})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be reached")
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authentication", raw)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
