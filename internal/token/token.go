// Package token generates the opaque identifiers and secret codes used
// throughout the system. Everything comes from a cryptographically strong
// random source; nothing is derived from counters or timestamps, and knowing
// one token gives no help guessing another.
//
// Collisions are not checked: at 128 bits per token the probability is
// negligible for any realistic number of sessions and attendees. This is a
// documented assumption, not a correctness guarantee.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// codeBytes gives 128 bits of entropy per code (22 base64url chars).
const codeBytes = 16

// NewID returns an opaque entity identifier (sessions, attendees).
func NewID() string {
	return uuid.NewString()
}

// NewCode returns a URL-safe secret code (management and attendance codes).
func NewCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
