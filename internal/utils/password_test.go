package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !VerifyPassword(hash, "secret") {
		t.Fatalf("expected password to match")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("expected password mismatch")
	}
}
