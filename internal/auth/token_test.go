package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestIssueAndVerify verifies the round trip: a freshly issued token
// verifies back to the same user ID.
func TestIssueAndVerify(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := ti.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	got, err := ti.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != userID {
		t.Errorf("Verify = %s, want %s", got, userID)
	}
}

// TestVerifyExpired verifies that a token past its lifetime is rejected.
func TestVerifyExpired(t *testing.T) {
	ti := NewTokenIssuer("test-secret", -time.Minute)
	token, err := ti.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := ti.Verify(token); err == nil {
		t.Error("Verify accepted an expired token")
	}
}

// TestVerifyWrongSecret verifies that a token signed with a different secret
// is rejected.
func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Hour).Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenIssuer("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("Verify accepted a token signed with another secret")
	}
}

// TestVerifyGarbage verifies that a non-token string is rejected.
func TestVerifyGarbage(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)
	for _, s := range []string{"", "not.a.token", "aaaa"} {
		if _, err := ti.Verify(s); err == nil {
			t.Errorf("Verify(%q) accepted garbage", s)
		}
	}
}
