package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing these invalidates stored digests, so any
// future change needs a version prefix in the encoded format first.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Hasher produces salted argon2id digests. A fresh random salt is drawn on
// every Hash call, so hashing the same plaintext twice yields different
// digests. An empty plaintext is hashed like any other input; rejecting it
// is the caller's job (the validator does).
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns "<salt>:<hash>", both base64 raw-std encoded.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return base64.RawStdEncoding.EncodeToString(salt) + ":" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

// Verify recomputes the digest with the salt embedded in encoded and
// compares in constant time. Any malformed digest verifies as false.
func (h *Hasher) Verify(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
