package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewSessionID mints a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidateSessionID reports whether a client-supplied session ID has the
// expected shape. Anything else is treated as a forged or stale cookie.
func ValidateSessionID(sessionID string) bool {
	_, err := uuid.Parse(sessionID)
	return err == nil
}

// GenerateRandomID generates a short random hex ID, used for request IDs.
func GenerateRandomID(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}
