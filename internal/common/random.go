package common

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// shareTokenBytes is the entropy of a share token. 12 random bytes encode
// to a 16-character URL-safe string; collision probability is negligible,
// so token generation itself is the uniqueness guarantee.
const shareTokenBytes = 12

// NewShareToken generates a random, URL-safe share-link token.
func NewShareToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// MakeRandHexString generates a random hexadecimal string from size random
// bytes. The resulting string is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
