package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// PasswordHasher provides hashing logic to securely store passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) bool
}

// SHA256Hasher uses SHA256 to hash passwords with provided salt.
type SHA256Hasher struct {
	salt string
}

func NewSHA256Hasher(salt string) *SHA256Hasher {
	return &SHA256Hasher{salt: salt}
}

func (h *SHA256Hasher) Hash(password string) (string, error) {
	hash := sha256.New()

	if _, err := hash.Write([]byte(password)); err != nil {
		return "", err
	}

	//nolint:perfsprint
	return fmt.Sprintf("%x", hash.Sum([]byte(h.salt))), nil
}

// Verify compares password against a stored hash in constant time.
func (h *SHA256Hasher) Verify(password string, storedHash string) bool {
	computed, err := h.Hash(password)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
