package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/auth"
)

// TestJWTAuthValidToken verifies that a valid bearer token passes through
// and the handler sees the token's user ID.
func TestJWTAuthValidToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()
	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	var gotUserID uuid.UUID
	handler := JWTAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = userIDFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if gotUserID != userID {
		t.Errorf("userID = %v, want %v", gotUserID, userID)
	}
}

// TestJWTAuthMissingHeader verifies 401 when no Authorization header is sent.
func TestJWTAuthMissingHeader(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := JWTAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestJWTAuthBadScheme verifies 401 for a non-bearer Authorization header.
func TestJWTAuthBadScheme(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := JWTAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestJWTAuthWrongSecret verifies 401 for a token signed with another key.
func TestJWTAuthWrongSecret(t *testing.T) {
	other := auth.NewTokenIssuer("other-secret", time.Hour)
	token, err := other.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	handler := JWTAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestCORSPreflight verifies that OPTIONS requests short-circuit with 204
// and permissive headers.
func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}
