package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// rememberTokenBytes is the entropy behind a remember-me token.
// 32 random bytes → 64 hex chars → 256 bits: unguessable by brute force.
const rememberTokenBytes = 32

// NewRememberToken generates a fresh opaque remember-me token string.
//
// The token is a pure random value — it carries no claims and means nothing
// until it's persisted in the auth_tokens table. Whoever presents it later is
// treated as the associated user, which is exactly why it must come from
// crypto/rand and not math/rand.
func NewRememberToken() (string, error) {
	raw := make([]byte, rememberTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("auth: generating remember token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
