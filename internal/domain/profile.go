package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FallbackProfile names the save slot used when a request carries none
const FallbackProfile = "default"

// SanitizeProfile reduces a requested profile name to a safe save-slot id.
// The input is NFKC-normalized, then everything outside [A-Za-z0-9_-] is
// dropped. A name with nothing left is rejected.
func SanitizeProfile(raw string) (string, error) {
	normalized := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if isProfileRune(r) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfile, raw)
	}
	return b.String(), nil
}

func isProfileRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '_' || r == '-'
}
