package model

import "time"

// SessionToken is a long-lived "remember me" bearer credential.
//
// LIFECYCLE:
// Created on a successful login when the user ticks "remember me", validated
// on app start to skip the login screen, and deleted on logout or when found
// expired. At most one token is live per account at any time — issuing a new
// one deletes all the account's prior tokens first (single-session semantics).
//
// WHY OPAQUE AND NOT A JWT?
// The remember token must be revocable: logging out has to kill it server-side
// (well, store-side) immediately. A random value looked up in the auth_tokens
// table gives us that for free. The stateless JWT we issue for API calls is a
// separate, short-lived thing — see internal/auth.
type SessionToken struct {
	ID        int64     `json:"id"        db:"id"`
	AccountID int64     `json:"accountId" db:"user_id"`
	Token     string    `json:"-"         db:"token"` // 32 random bytes, hex-encoded
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}
