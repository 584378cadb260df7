// Package cryptox holds the key-derivation primitives used for
// pseudonymous session identities.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing any of them changes every derived identity.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// DeriveKey stretches secret with salt into a size-byte key using argon2id.
func DeriveKey(secret, salt []byte, size uint32) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, size)
}

// Fingerprint returns the SHA-256 digest of b. It lets logs refer to a
// secret without revealing it.
func Fingerprint(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}
