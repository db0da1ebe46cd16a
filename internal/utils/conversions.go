package utils

import "strings"

// MaskSecret keeps the first n characters of a credential for log output.
func MaskSecret(secret string, n int) string {
	if secret == "" {
		return "<none>"
	}
	if len(secret) <= n {
		return strings.Repeat("*", len(secret))
	}
	return secret[:n] + "..."
}

// IsAlphanumeric reports whether s is non-empty and only holds ASCII letters and digits.
func IsAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
