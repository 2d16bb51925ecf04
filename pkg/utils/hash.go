package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString returns the hex SHA-256 of input. Phone numbers and emails are
// logged in this form only.
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// ShortHash is the first 12 hex characters of HashString, enough to
// correlate log lines for one contact.
func ShortHash(input string) string {
	if input == "" {
		return ""
	}
	return HashString(input)[:12]
}

// MaskSecrets replaces every occurrence of the given secrets in s with ***.
func MaskSecrets(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, "***")
	}
	return s
}
