package security

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt digest of an unguessable throwaway value. Login paths
// compare against it when no user record exists so that "unknown email" and
// "wrong password" take the same time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hasher hashes and verifies passwords using bcrypt. Callers must not log or
// persist plaintext passwords.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost (4–31). Cost 10 is
// the default used for interactive login.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a salted bcrypt digest of password. Two calls with the same
// password yield different digests; the salt is embedded in the digest.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches the stored digest. Malformed
// digests are treated as a mismatch, never an error.
func (h *Hasher) Verify(hash string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}

// DummyVerify burns one bcrypt comparison against a fixed digest and always
// reports false. Used on the user-not-found login path to keep response
// timing independent of whether the email is registered.
func (h *Hasher) DummyVerify(password []byte) bool {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), password)
	return false
}
