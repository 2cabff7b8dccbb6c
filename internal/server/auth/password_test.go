package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasherWithCost(bcrypt.MinCost)

	for _, pw := range []string{"pw1", "correct horse battery staple", "пароль", " "} {
		digest, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash(%q) error: %v", pw, err)
		}
		if strings.Contains(digest, pw) && pw != " " {
			t.Fatalf("digest contains plaintext: %q", digest)
		}
		if !h.Verify(pw, digest) {
			t.Fatalf("Verify(%q) = false for its own digest", pw)
		}
		if h.Verify(pw+"x", digest) {
			t.Fatalf("Verify accepted a different password for %q", pw)
		}
	}
}

func TestBcryptHasher_SaltedNonDeterministic(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasherWithCost(bcrypt.MinCost)

	a, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
	if !h.Verify("pw1", a) || !h.Verify("pw1", b) {
		t.Fatal("both digests must verify")
	}
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	digest, err := NewBcryptHasher().Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != DefaultPasswordCost {
		t.Fatalf("cost = %d, want %d", cost, DefaultPasswordCost)
	}
}

func TestBcryptHasher_MalformedDigestFailsClosed(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasherWithCost(bcrypt.MinCost)
	for _, digest := range []string{"", "plain", "$2a$10$short", "pw1"} {
		if h.Verify("pw1", digest) {
			t.Fatalf("Verify accepted malformed digest %q", digest)
		}
	}
}

func TestBcryptHasher_TooLongPassword(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasherWithCost(bcrypt.MinCost).Hash(strings.Repeat("a", MaxPasswordLength+1))
	if err == nil {
		t.Fatal("expected error for password longer than 72 bytes")
	}
}
