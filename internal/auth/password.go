// Package auth — credential primitives: password hashing, remember tokens,
// and the short-lived JWTs the local API uses between UI and core.
//
// WHY PBKDF2 AND NOT BCRYPT?
// PBKDF2-HMAC-SHA256 is what every existing VocabLoury install hashed its
// passwords with, and the parameters below (100,000 iterations, 16-byte salt)
// are baked into every stored hash. Changing the algorithm or iteration count
// invalidates all of them, and there is no hash-versioning/migration path in
// this core, so these constants are effectively frozen.
//
// PBKDF2 is deliberately slow: deriving a key runs the HMAC 100,000 times,
// which is nothing for one login and brutal for an attacker grinding a stolen
// database. Unlike bcrypt, the salt is NOT embedded in the output — we store
// it in its own column and feed it back in at verify time.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// defaultIterations is the PBKDF2 work factor. Fixed — see package comment.
	defaultIterations = 100_000

	// saltBytes is how many random bytes go into a new salt (32 hex chars).
	saltBytes = 16

	// hashBytes is the derived key length (SHA-256 output size, 64 hex chars).
	hashBytes = sha256.Size
)

// PasswordService derives and verifies salted PBKDF2 password hashes.
//
// It's a struct (not free functions) so the iteration count can be dialled
// down in tests — 100k iterations per call adds up fast across a test suite,
// and the logic under test doesn't care about the work factor.
type PasswordService struct {
	iterations int
}

// NewPasswordService creates a PasswordService with the production work factor.
func NewPasswordService() *PasswordService {
	return &PasswordService{iterations: defaultIterations}
}

// NewPasswordServiceForTest creates a PasswordService with a reduced iteration
// count. Do NOT use in production — hashes it produces are incompatible with
// (and far weaker than) the real ones.
func NewPasswordServiceForTest(iterations int) *PasswordService {
	return &PasswordService{iterations: iterations}
}

// Hash derives a hash for the password under a fresh random salt.
//
// Returns (hashHex, saltHex) so the caller can persist both — the salt column
// is what makes verification possible later.
func (p *PasswordService) Hash(password string) (hashHex, saltHex string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("auth: generating salt: %w", err)
	}
	saltHex = hex.EncodeToString(raw)
	return p.hashWithSalt(password, saltHex), saltHex, nil
}

// HashWithSalt derives a hash for the password under a caller-supplied salt.
// Used when recomputing a hash against stored credentials; new credentials
// should go through Hash so they get a fresh salt.
func (p *PasswordService) HashWithSalt(password, saltHex string) string {
	return p.hashWithSalt(password, saltHex)
}

// Verify recomputes the hash for (password, saltHex) and compares it against
// the stored hash.
//
// TIMING SAFETY:
// The comparison uses hmac.Equal (constant time). For a KDF output this is
// mostly belt-and-braces — the derivation itself dominates — but it costs
// nothing.
func (p *PasswordService) Verify(password, expectedHashHex, saltHex string) bool {
	computed := p.hashWithSalt(password, saltHex)
	return hmac.Equal([]byte(computed), []byte(expectedHashHex))
}

// hashWithSalt is the one place the KDF is invoked.
//
// COMPATIBILITY NOTE:
// The salt fed to PBKDF2 is the hex STRING's bytes, not the decoded 16 bytes.
// That matches how every existing install derived its hashes (the salt column
// holds hex text and it was always used verbatim), so it stays that way.
func (p *PasswordService) hashWithSalt(password, saltHex string) string {
	key := pbkdf2.Key([]byte(password), []byte(saltHex), p.iterations, hashBytes, sha256.New)
	return hex.EncodeToString(key)
}
