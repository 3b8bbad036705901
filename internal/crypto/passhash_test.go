package crypto

import (
	"bytes"
	"testing"
)

func TestRandBytes_LengthAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 32
	a, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes: %v", err)
	}
	if len(a) != n {
		t.Fatalf("len=%d, want=%d", len(a), n)
	}
	b, err := RandBytes(n)
	if err != nil {
		t.Fatalf("RandBytes(2): %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two subsequent RandBytes(%d) are equal", n)
	}
}

func TestHashPassword_SaltMatters(t *testing.T) {
	t.Parallel()

	pw := []byte("hunter2hunter2")
	s1 := []byte("salt-one-16bytes")
	s2 := []byte("salt-two-16bytes")

	h1 := HashPassword(pw, s1)
	if !bytes.Equal(h1, HashPassword(pw, s1)) {
		t.Fatalf("hash not deterministic for same input")
	}
	if bytes.Equal(h1, HashPassword(pw, s2)) {
		t.Fatalf("same hash for different salts")
	}
	if bytes.Equal(h1, pw) {
		t.Fatalf("hash equals plaintext")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	pw := []byte("correct horse")
	salt := []byte("0123456789abcdef")
	h := HashPassword(pw, salt)

	if !VerifyPassword(pw, salt, h) {
		t.Fatalf("valid password rejected")
	}
	if VerifyPassword([]byte("battery staple"), salt, h) {
		t.Fatalf("wrong password accepted")
	}
}
