package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Stored form is hex(key) + "." + hex(salt). The dot can never appear in
// either hex half, so splitting on it is unambiguous.
const (
	scryptN   = 32768
	scryptR   = 8
	scryptP   = 1
	keyLength = 32
	saltBytes = 16
	separator = "."
)

// HashPassword derives a scrypt key from the plaintext under a fresh
// random salt and returns the stored form.
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(plaintext), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(key) + separator + hex.EncodeToString(salt), nil
}

// CheckPassword reports whether plaintext matches the stored form. It
// never returns an error: malformed records, bad hex and derivation
// failures all read as a failed check, so the login path cannot tell a
// crypto problem apart from a wrong password.
func CheckPassword(plaintext, stored string) bool {
	parts := strings.Split(stored, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	key, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(plaintext), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, key) == 1
}

// LooksHashed reports whether s has the shape of a stored form. Input
// validation only; creation paths state intent explicitly instead of
// guessing from this.
func LooksHashed(s string) bool {
	parts := strings.Split(s, separator)
	if len(parts) != 2 {
		return false
	}
	_, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	_, err = hex.DecodeString(parts[1])
	return err == nil && parts[0] != "" && parts[1] != ""
}
