package security

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestResetTokenManager_IssueAndValidate(t *testing.T) {
	m := NewResetTokenManager(time.Hour)
	raw, digest, expiresAt, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if b, err := hex.DecodeString(raw); err != nil || len(b) != 32 {
		t.Fatalf("raw token should be 32 hex-encoded random bytes, got %q", raw)
	}
	if digest == raw {
		t.Fatal("stored digest must not equal the raw token")
	}
	if got, want := time.Until(expiresAt), time.Hour; got > want || got < want-time.Minute {
		t.Errorf("expiry window = %v, want ~%v", got, want)
	}
	if err := m.Validate(raw, digest, expiresAt); err != nil {
		t.Errorf("Validate fresh token: %v", err)
	}
}

func TestResetTokenManager_IssueUnique(t *testing.T) {
	m := NewResetTokenManager(time.Hour)
	a, _, _, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	b, _, _, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if a == b {
		t.Error("two issued tokens should never collide")
	}
}

func TestResetTokenManager_ValidateMismatch(t *testing.T) {
	m := NewResetTokenManager(time.Hour)
	_, digest, expiresAt, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other, _, _, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := m.Validate(other, digest, expiresAt); err != ErrTokenInvalid {
		t.Errorf("Validate with wrong token: want ErrTokenInvalid, got %v", err)
	}
	if err := m.Validate("", digest, expiresAt); err != ErrTokenInvalid {
		t.Errorf("Validate with empty token: want ErrTokenInvalid, got %v", err)
	}
	raw, _, _, _ := m.Issue()
	if err := m.Validate(raw, "", expiresAt); err != ErrTokenInvalid {
		t.Errorf("Validate with empty digest: want ErrTokenInvalid, got %v", err)
	}
}

func TestResetTokenManager_ValidateExpired(t *testing.T) {
	m := NewResetTokenManager(time.Hour)
	raw, digest, _, err := m.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	past := time.Now().UTC().Add(-time.Second)
	if err := m.Validate(raw, digest, past); err != ErrTokenExpired {
		t.Errorf("Validate expired-but-matching token: want ErrTokenExpired, got %v", err)
	}
}

func TestResetTokenDigestEqual(t *testing.T) {
	raw := "deadbeef"
	digest := HashResetToken(raw)
	if !ResetTokenDigestEqual(raw, digest) {
		t.Error("digest of raw token should compare equal")
	}
	if ResetTokenDigestEqual("deadbeee", digest) {
		t.Error("different token should not compare equal")
	}
}
