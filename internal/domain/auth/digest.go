package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// HashPassword computes the stored digest for a password: a single-round
// unsalted SHA-256 over the UTF-8 bytes, base64-encoded.
//
// This is deliberately weak. It mirrors the legacy credential format and is
// acceptable only because the store is an in-memory toy; a production system
// must use a salted, memory-hard KDF. Strengthening it here would change
// every stored digest, so it is flagged instead of fixed.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword recomputes the digest and compares byte-for-byte in
// constant time.
func VerifyPassword(password, digest string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
