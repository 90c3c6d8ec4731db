// Package knol fingerprints card content so the same card can be recognized
// across imports regardless of case, surrounding whitespace or line endings.
package knol

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize joins front and back after cleaning each part.
// It trims whitespace, lowercases, and normalizes line endings for each field.
func Normalize(front, back string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return strings.TrimSpace(p)
	}

	// Joined with a newline so "ab"+"c" and "a"+"bc" differ.
	return normalizePart(front) + "\n" + normalizePart(back)
}

// Hash returns the SHA-256 of the normalized content as a hex string.
func Hash(front, back string) string {
	sum := sha256.Sum256([]byte(Normalize(front, back)))
	return fmt.Sprintf("%x", sum)
}
