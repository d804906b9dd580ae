package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"
)

var (
	// ErrTokenInvalid is returned when a reset token does not match the stored digest.
	ErrTokenInvalid = errors.New("reset token invalid")
	// ErrTokenExpired is returned when a reset token matches but its window has passed.
	// Callers must map it to the same user-visible outcome as ErrTokenInvalid.
	ErrTokenExpired = errors.New("reset token expired")
)

// ResetTokenManager issues and validates single-use password-recovery tokens.
// The raw token is a bearer secret handed to the user out-of-band; only its
// SHA-256 digest is ever stored, so a storage-read compromise cannot be
// replayed as a valid token.
type ResetTokenManager struct {
	TTL time.Duration
}

// NewResetTokenManager returns a manager with the given token lifetime.
// A non-positive ttl falls back to one hour.
func NewResetTokenManager(ttl time.Duration) *ResetTokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResetTokenManager{TTL: ttl}
}

// Issue generates a 256-bit random token. It returns the hex-encoded raw
// token (sent to the user, never stored), the digest to persist, and the
// expiry timestamp.
func (m *ResetTokenManager) Issue() (raw string, digest string, expiresAt time.Time, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	raw = hex.EncodeToString(b)
	return raw, HashResetToken(raw), time.Now().UTC().Add(m.TTL), nil
}

// Validate recomputes the digest of raw and compares it with storedDigest in
// constant time, then checks expiry. Returns ErrTokenInvalid on mismatch and
// ErrTokenExpired for a matching token past storedExpiresAt; an expired match
// is reported distinctly for observability only.
func (m *ResetTokenManager) Validate(raw, storedDigest string, storedExpiresAt time.Time) error {
	if raw == "" || storedDigest == "" {
		return ErrTokenInvalid
	}
	if !ResetTokenDigestEqual(raw, storedDigest) {
		return ErrTokenInvalid
	}
	if time.Now().UTC().After(storedExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// HashResetToken returns the SHA-256 digest of the raw token, hex-encoded.
func HashResetToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// ResetTokenDigestEqual performs a constant-time comparison of the provided
// token's digest with the stored digest.
func ResetTokenDigestEqual(raw, storedDigest string) bool {
	digest := HashResetToken(raw)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(storedDigest)) == 1
}
