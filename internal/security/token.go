package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const inviteTokenBytes = 32

// GenerateInviteToken returns an unguessable, URL-safe invitation token.
func GenerateInviteToken() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
