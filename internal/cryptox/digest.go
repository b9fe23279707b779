// Package cryptox computes content digests attached to uploaded objects so a
// stored payload can be verified later.
package cryptox

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Digest returns the hex-encoded BLAKE2b-256 digest of everything read from r.
func Digest(r io.Reader) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("blake2b: %w", err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash payload: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DigestBytes is Digest for in-memory payloads.
func DigestBytes(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
