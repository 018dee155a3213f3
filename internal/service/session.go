package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/auth"
	"github.com/sakif/vocabloury/internal/repository"
)

// RememberTokenTTL is how long a remember-me token stays valid. Thirty days
// is the lifetime every existing install was issued under.
const RememberTokenTTL = 30 * 24 * time.Hour

// SessionService manages the lifecycle of remember-me bearer tokens.
//
// STATE MACHINE (per account):
//
//	NoToken → ActiveToken → (Expired | Revoked) → NoToken
//
// Only one token is ever in ActiveToken state per account; the store's
// delete-then-insert rotation enforces that transactionally.
type SessionService struct {
	tokens repository.TokenRepository
	logger *slog.Logger
}

// NewSessionService creates a SessionService with its dependencies injected.
func NewSessionService(tokens repository.TokenRepository, logger *slog.Logger) *SessionService {
	return &SessionService{
		tokens: tokens,
		logger: logger,
	}
}

// Issue creates a fresh remember-me token for the account, replacing any
// token the account had, and returns the token string.
//
// The caller (the UI shell) owns external storage of the returned value —
// typically a plaintext file next to the app it reads back on startup. From
// here on the token is a bearer credential: whoever presents it to Validate
// is treated as this account.
func (s *SessionService) Issue(ctx context.Context, accountID int64) (string, error) {
	token, err := auth.NewRememberToken()
	if err != nil {
		return "", fmt.Errorf("service/session: %w", err)
	}

	expiresAt := time.Now().Add(RememberTokenTTL)
	if err := s.tokens.CreateToken(ctx, accountID, token, expiresAt); err != nil {
		return "", fmt.Errorf("service/session: issuing token for account %d: %w", accountID, err)
	}

	s.logger.Info("remember token issued",
		slog.Int64("accountID", accountID),
		slog.Time("expiresAt", expiresAt),
	)

	return token, nil
}

// Validate resolves a presented token to the username it authenticates.
//
// A token that doesn't exist and a token that expired produce the identical
// TokenInvalid error — callers cannot tell which, so the API doesn't leak
// which token values were ever issued. Store faults are NOT folded into
// TokenInvalid; they propagate so the caller can report a real failure
// instead of silently showing the login screen.
func (s *SessionService) Validate(ctx context.Context, token string) (string, error) {
	_, username, err := s.ValidateToAccount(ctx, token)
	return username, err
}

// ValidateToAccount is Validate plus the account ID — the silent re-auth
// handler needs the ID to mint a fresh API token.
func (s *SessionService) ValidateToAccount(ctx context.Context, token string) (int64, string, error) {
	if token == "" {
		return 0, "", apperror.TokenInvalid()
	}

	accountID, username, err := s.tokens.GetLiveToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return 0, "", apperror.TokenInvalid()
		}
		return 0, "", fmt.Errorf("service/session: validating token: %w", err)
	}

	s.logger.Info("remember token validated",
		slog.Int64("accountID", accountID),
		slog.String("username", username),
	)

	return accountID, username, nil
}

// Revoke deletes the token. Always succeeds for unknown tokens — logging out
// twice, or after expiry cleanup, is not an error anyone needs to see.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.tokens.DeleteToken(ctx, token); err != nil {
		return fmt.Errorf("service/session: revoking token: %w", err)
	}
	return nil
}
