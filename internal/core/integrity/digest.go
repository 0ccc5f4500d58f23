// Package integrity computes and checks the SHA-256 digests that
// authenticate plugin content. Pure functions, no I/O.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA-256 digest of data as 64 lowercase hex characters.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether data hashes to the expected digest.
func Verify(data []byte, expected string) bool {
	return Digest(data) == expected
}
