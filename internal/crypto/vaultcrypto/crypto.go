// Package vaultcrypto seals the per-account collection blobs at rest.
//
// Key hierarchy: the login password derives a KEK (Argon2id, per-account
// salt); the KEK wraps a random DEK stored with the account; each collection
// blob is sealed with a per-collection key derived from the DEK via
// HKDF-SHA256. Losing the password therefore loses the vault, which matches
// the fully-local, single-device model.
package vaultcrypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Key sizes and Argon2id parameters.
const (
	DEKLen = 32
	KEKLen = 32

	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 1
)

// Rand returns n cryptographically secure random bytes.
func Rand(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// DeriveKEK derives the key-encryption key from password and kekSalt.
func DeriveKEK(password, kekSalt []byte) []byte {
	return argon2.IDKey(password, kekSalt, argonTime, argonMemory, argonThreads, KEKLen)
}

// WrapDEK encrypts the DEK with the KEK using XChaCha20-Poly1305.
func WrapDEK(kek, dek []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return nil, err
	}
	nonce, err := Rand(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(dek)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, dek, nil)...)
	return out, nil
}

// UnwrapDEK decrypts a wrapped DEK. Fails when the KEK is wrong, which is
// how a wrong password surfaces at the vault layer.
func UnwrapDEK(kek, wrapped []byte) ([]byte, error) {
	if len(wrapped) < chacha20poly1305.NonceSizeX {
		return nil, errors.New("wrapped DEK too short")
	}
	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return nil, err
	}
	nonce := wrapped[:chacha20poly1305.NonceSizeX]
	ct := wrapped[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ct, nil)
}

// collectionKey derives the sealing key for one collection of one account.
func collectionKey(dek []byte, namespace, collection string) ([]byte, error) {
	info := []byte(namespace + "/" + collection)
	r := hkdf.New(sha256.New, dek, nil, info)
	key := make([]byte, DEKLen)
	if _, err := r.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// aad binds a sealed blob to its account namespace and collection name so
// blobs cannot be swapped between keys in the store.
func aad(namespace, collection string) []byte {
	return []byte(namespace + "\x00" + collection)
}

// SealCollection encrypts a serialized collection for (namespace, collection).
func SealCollection(dek []byte, namespace, collection string, plaintext []byte) ([]byte, error) {
	key, err := collectionKey(dek, namespace, collection)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce, err := Rand(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, plaintext, aad(namespace, collection))...)
	return out, nil
}

// OpenCollection decrypts a sealed collection blob.
func OpenCollection(dek []byte, namespace, collection string, blob []byte) ([]byte, error) {
	if len(blob) < chacha20poly1305.NonceSizeX {
		return nil, errors.New("sealed blob too short")
	}
	key, err := collectionKey(dek, namespace, collection)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := blob[:chacha20poly1305.NonceSizeX]
	ct := blob[chacha20poly1305.NonceSizeX:]
	pt, err := aead.Open(nil, nonce, ct, aad(namespace, collection))
	if err != nil {
		return nil, fmt.Errorf("open %s/%s: %w", namespace, collection, err)
	}
	return pt, nil
}
