// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("invalid credential")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidateCredential compares a client-supplied credential with the
// configured board password in constant time
// An empty expected value never matches
func ValidateCredential(given, expected string) error {
	if expected == "" {
		return ErrUnauthorized
	}
	// digests have equal length, so the comparison time does not depend on len(given)
	if !hmac.Equal(digest(given), digest(expected)) {
		return ErrUnauthorized
	}
	return nil
}

func digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}
