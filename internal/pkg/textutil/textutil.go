package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Normalize lower-cases text, strips control characters and collapses any
// whitespace run to a single space. It is idempotent and never fails; a
// whitespace-only input yields the empty string.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case r < 0x20 || r == 0x7f:
			sb.WriteRune(' ')
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		default:
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Hash returns the hex-encoded SHA-256 digest of the UTF-8 bytes of text.
// Callers are expected to hash normalized text so that semantically equal
// content always maps to the same digest.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
