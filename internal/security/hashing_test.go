package security

import (
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(4)
	password := []byte("secret123")
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	if hash == string(password) {
		t.Fatal("digest must not equal plaintext")
	}
	if !h.Verify(hash, password) {
		t.Fatal("Verify should accept the original password")
	}
}

func TestHasher_VerifyWrongPassword(t *testing.T) {
	h := NewHasher(4)
	hash, _ := h.Hash([]byte("secret123"))
	if h.Verify(hash, []byte("wrong")) {
		t.Fatal("Verify with wrong password should fail")
	}
}

func TestHasher_VerifyMalformedDigest(t *testing.T) {
	h := NewHasher(4)
	if h.Verify("not-a-bcrypt-digest", []byte("secret123")) {
		t.Fatal("Verify with malformed digest should report false, not panic")
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	h := NewHasher(4)
	a, err := h.Hash([]byte("secret123"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash([]byte("secret123"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("hashing the same password twice should yield different digests")
	}
	if !h.Verify(a, []byte("secret123")) || !h.Verify(b, []byte("secret123")) {
		t.Error("both digests should verify against the original password")
	}
}

func TestHasher_DummyVerify(t *testing.T) {
	h := NewHasher(4)
	if h.DummyVerify([]byte("anything")) {
		t.Fatal("DummyVerify must always report false")
	}
}

func TestHasher_Cost(t *testing.T) {
	h := NewHasher(12)
	if h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	h0 := NewHasher(0)
	if h0.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h0.Cost)
	}
	h99 := NewHasher(99)
	if h99.Cost > 31 {
		t.Errorf("oversized cost should be clamped to MaxCost, got %d", h99.Cost)
	}
}
