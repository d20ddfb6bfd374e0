package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateMutationToken returns a 128-bit random token, hex encoded.
func GenerateMutationToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
