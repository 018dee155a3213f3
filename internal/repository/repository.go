// Package repository defines the storage interfaces the service layer
// programs against.
//
// The concrete implementation lives in repository/sqlite; services never see
// it. That's the ownership rule of the credential store: the on-disk database
// is reached only through these contracts, never by raw query from elsewhere.
package repository

import (
	"context"
	"time"

	"github.com/sakif/vocabloury/internal/model"
)

// AccountRepository persists registered user accounts.
type AccountRepository interface {
	// CreateAccount inserts a new account and fills in its ID and CreatedAt.
	// Returns apperror.ErrDuplicateUsername / ErrDuplicateEmail when the
	// corresponding UNIQUE constraint fires, apperror.ErrStore otherwise.
	CreateAccount(ctx context.Context, account *model.Account) error

	// GetAccountByUsername returns the account for the exact username.
	// Returns apperror.ErrNotFound if no such account exists.
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)

	// GetAccountByID returns the account for the surrogate key.
	// Returns apperror.ErrNotFound if no such account exists.
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
}

// TokenRepository persists remember-me session tokens.
type TokenRepository interface {
	// CreateToken deletes every existing token for accountID and inserts the
	// new one, as a single transaction — at most one live token per account,
	// with no window where two are visible.
	CreateToken(ctx context.Context, accountID int64, token string, expiresAt time.Time) error

	// GetLiveToken resolves a token to its account, but only if the token
	// exists and expires after now. Expired rows are treated as absent; they
	// are not purged here (passive expiry). Returns apperror.ErrNotFound for
	// both missing and expired tokens.
	GetLiveToken(ctx context.Context, token string, now time.Time) (accountID int64, username string, err error)

	// DeleteToken removes the token row if present. Deleting a token that
	// doesn't exist is not an error.
	DeleteToken(ctx context.Context, token string) error
}

// WordHistoryRepository persists the append-only word lookup log.
type WordHistoryRepository interface {
	// AppendWord records one lookup. Duplicates are allowed — the same word
	// appearing many times means it was looked up many times.
	AppendWord(ctx context.Context, username, word, meaning string) error

	// ListWords returns the user's history, most recent first.
	ListWords(ctx context.Context, username string) ([]model.WordHistoryEntry, error)

	// DeleteWord removes every history row for the exact (username, word) pair.
	DeleteWord(ctx context.Context, username, word string) error

	// CountWords returns how many history rows the user has (the dashboard's
	// "words learned" number).
	CountWords(ctx context.Context, username string) (int64, error)
}
