package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// TokenService issues and validates the short-lived JWT access tokens the
// local API runs on.
//
// TWO TOKENS, TWO JOBS:
// The JWT is the UI shell's API session — stateless, 15 minutes, signed with
// an HMAC secret, validated on every request with zero store lookups. The
// remember-me token (token.go + the auth_tokens table) is the 30-day bearer
// credential that survives restarts and can be revoked store-side. Login and
// silent re-auth both end in a fresh JWT; the remember token never travels on
// ordinary API calls.
//
// JWT STRUCTURE (three base64 parts separated by dots):
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: algorithm + type → {"alg":"HS256","typ":"JWT"}
//	- Payload: claims → {"sub":"<accountID>","exp":...,"jti":"..."}
//	- Signature: HMAC-SHA256(header+"."+payload, secret)
type TokenService struct {
	secret []byte
}

// accessTokenTTL is how long an API session lasts before the UI has to
// re-authenticate (silently, via the remember token, when the user opted in).
const accessTokenTTL = 15 * time.Minute

const issuer = "vocabloury"

// NewTokenService creates a TokenService with the given HMAC secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims — Subject carries the account ID,
// ID (the "jti" claim) carries a unique xid so individual tokens are
// distinguishable in logs.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a JWT access token for the given account.
func (s *TokenService) Generate(accountID int64) (string, error) {
	return s.GenerateWithDuration(accountID, accessTokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry. Used by tests
// that need an already-expired token without sleeping.
func (s *TokenService) GenerateWithDuration(accountID int64, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a JWT string, returning the account ID from
// the "sub" claim.
//
// The jwt library checks the signature, the expiry, and the issuer; pinning
// the algorithm with WithValidMethods closes the algorithm-confusion hole
// (an attacker-supplied "alg":"none" token must never verify).
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("auth: invalid token claims")
	}

	accountID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return 0, fmt.Errorf("auth: token subject is not an account ID")
	}

	return accountID, nil
}
