package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/repository"
)

// compile-time check that *DB implements repository.TokenRepository
var _ repository.TokenRepository = (*DB)(nil)

// CreateToken replaces the account's remember-me token.
//
// SINGLE LIVE TOKEN INVARIANT:
// "Remember me" is single-session: issuing a new token kills every token the
// account had before. The DELETE and the INSERT run inside one transaction so
// no concurrent reader can ever observe the account with zero tokens mid-swap
// or with two tokens after a racing double login — whichever transaction
// commits second wins outright.
func (db *DB) CreateToken(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Store("starting token transaction", err)
	}
	// Rollback after a successful Commit is a no-op, so this is safe on
	// every exit path.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE user_id = ?`, accountID,
	); err != nil {
		return apperror.Store("deleting previous tokens", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO auth_tokens (user_id, token, expires_at) VALUES (?, ?, ?)`,
		accountID, token, expiresAt.Unix(),
	); err != nil {
		return apperror.Store("inserting token", err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Store("committing token transaction", err)
	}

	return nil
}

// GetLiveToken resolves a token to the account it belongs to, but only while
// the token is live.
//
// PASSIVE EXPIRY:
// The WHERE clause treats expired rows as absent; it does not delete them.
// Expired rows linger until the owning account logs in again (CreateToken's
// delete-then-insert) or explicitly logs out. Callers get the same not-found
// answer for "never existed" and "expired", which is deliberate — the lookup
// must not leak which tokens once existed.
func (db *DB) GetLiveToken(ctx context.Context, token string, now time.Time) (int64, string, error) {
	var (
		accountID int64
		username  string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT a.id, a.username
		 FROM auth_tokens t
		 JOIN accounts a ON t.user_id = a.id
		 WHERE t.token = ? AND t.expires_at > ?`,
		token, now.Unix(),
	).Scan(&accountID, &username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", apperror.NotFound("token", "presented value")
		}
		return 0, "", apperror.Store("getting live token", err)
	}

	return accountID, username, nil
}

// DeleteToken removes the token row if it exists. Idempotent — deleting a
// token that was never issued (or already deleted) succeeds silently, which
// is what logout needs.
func (db *DB) DeleteToken(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE token = ?`, token,
	); err != nil {
		return apperror.Store("deleting token", err)
	}
	return nil
}
