package auth

import "testing"

// TestPasswordHashRoundTrip verifies that the correct password matches its
// hash and a wrong one does not.
func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("SecurePass123!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "SecurePass123!" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("SecurePass123!", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
}
