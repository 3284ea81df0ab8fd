package apikey

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"strings"
)

// maskedLength is how much of a presented key is kept for audit records.
const maskedLength = 8

// GenerateAPIKey generates a new API key with the given prefix
func GenerateAPIKey(prefix string) (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	encoded := base32.StdEncoding.EncodeToString(bytes)
	encoded = strings.ReplaceAll(encoded, "=", "")

	return prefix + "_" + encoded, nil
}

// Matches compares a presented key against the configured one in constant time.
func Matches(presented, configured string) bool {
	if presented == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}

// Mask keeps the first eight characters of a key followed by "...".
func Mask(key string) string {
	if key == "" {
		return "masked"
	}
	if len(key) <= maskedLength {
		return key + "..."
	}
	return key[:maskedLength] + "..."
}
