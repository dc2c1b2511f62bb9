package util

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D+`)

// NormalizeEmail lower-cases and trims the address for hashing.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizePhone keeps digits only, e.g. "(11) 98888-7777" -> "11988887777".
func NormalizePhone(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// SHA256Hex returns the lowercase hex digest of s.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
