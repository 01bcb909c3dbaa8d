package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tc := NewTokenCodec("secret", time.Minute)
	token, err := tc.Issue("seller@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	sub, err := tc.Verify(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if sub != "seller@example.com" {
		t.Fatalf("unexpected subject %q", sub)
	}
	if !tc.IsValid(token, "seller@example.com") {
		t.Fatalf("expected token to be valid for its subject")
	}
	if tc.IsValid(token, "other@example.com") {
		t.Fatalf("token must not validate for a different subject")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-a", time.Minute).Issue("seller@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := NewTokenCodec("secret-b", time.Minute).Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	tc := NewTokenCodec("secret", -time.Minute)
	token, err := tc.Issue("seller@example.com")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := tc.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tc := NewTokenCodec("secret", time.Minute)
	if _, err := tc.Verify("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
