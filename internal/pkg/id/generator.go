package id

import (
	"strings"

	"github.com/google/uuid"
)

// RequestID returns a fresh id for X-Request-ID.
func RequestID() string { return "relay-" + uuid.New().String() }

// ValidRequestID reports whether a caller supplied id is safe to echo back
// and print: non-empty, bounded and free of control characters.
func ValidRequestID(s string) bool {
	if s == "" || len(s) > 128 {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool { return r < 0x20 || r == 0x7f })
}
