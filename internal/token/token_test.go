package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	signed, expiresAt, err := mgr.Issue(42, "editor")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a signed token")
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute {
		t.Fatalf("expiry too close: %v", remaining)
	}

	userID, claims, err := mgr.Verify(signed)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID = %d, want 42", userID)
	}
	if claims.Role != "editor" {
		t.Fatalf("role = %q, want editor", claims.Role)
	}
}

func TestVerifyExpired(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	signed, _, err := mgr.Issue(7, "reader")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := mgr.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	mgr := NewManager("secret-a", time.Hour)
	other := NewManager("secret-b", time.Hour)

	signed, _, err := mgr.Issue(1, "reader")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := other.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, _, err := mgr.Verify(raw); err != ErrInvalidToken {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
