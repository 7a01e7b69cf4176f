// Package auth guards the operator API. The API key is stored as a bcrypt
// hash so configuration files never carry the plaintext key.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used for API key hashing
const DefaultCost = bcrypt.DefaultCost

// HashAPIKey generates a bcrypt hash for a plaintext API key
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// CheckAPIKey compares a plaintext API key with a bcrypt hash
func CheckAPIKey(key, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}
