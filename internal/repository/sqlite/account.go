package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/model"
	"github.com/sakif/vocabloury/internal/repository"
)

// compile-time check that *DB implements repository.AccountRepository
var _ repository.AccountRepository = (*DB)(nil)

// CreateAccount inserts a new account row and fills in ID and CreatedAt.
//
// DUPLICATE DETECTION:
// username and email each carry a UNIQUE constraint, and the caller needs to
// know WHICH one fired so the signup form can highlight the right field. The
// previous implementation substring-matched the whole error text, which also
// matched unrelated errors that happened to mention "username". Here we first
// check the driver's extended result code (SQLITE_CONSTRAINT_UNIQUE) and only
// then look at the qualified column name ("accounts.username") the driver
// reports for the violated constraint.
func (db *DB) CreateAccount(ctx context.Context, account *model.Account) error {
	account.CreatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO accounts (username, email, password, salt, profession, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Salt,
		string(account.Profession),
		account.CreatedAt,
	)
	if err != nil {
		if col, ok := uniqueViolationColumn(err); ok {
			switch col {
			case "accounts.username":
				return apperror.DuplicateUsername(account.Username)
			case "accounts.email":
				return apperror.DuplicateEmail(account.Email)
			}
		}
		return apperror.Store("inserting account", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperror.Store("reading new account id", err)
	}
	account.ID = id

	return nil
}

// GetAccountByUsername retrieves an account by its exact username.
// Returns apperror.ErrNotFound if no account exists with that username.
func (db *DB) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return db.getAccount(ctx,
		`SELECT id, username, email, password, salt, profession, created_at
		 FROM accounts WHERE username = ?`,
		username, username,
	)
}

// GetAccountByID retrieves an account by its surrogate key. Used to resolve
// token → account joins and the authenticated /api/me lookup.
func (db *DB) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	return db.getAccount(ctx,
		`SELECT id, username, email, password, salt, profession, created_at
		 FROM accounts WHERE id = ?`,
		id, strconv.FormatInt(id, 10),
	)
}

// getAccount runs a single-row account query and scans the result.
// key is only used for the not-found error message.
func (db *DB) getAccount(ctx context.Context, query string, arg any, key string) (*model.Account, error) {
	var (
		a          model.Account
		profession sql.NullString
	)

	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&a.Salt,
		&profession,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("account", key)
		}
		return nil, apperror.Store(fmt.Sprintf("getting account %s", key), err)
	}

	// profession is nullable: rows created before the profession column was
	// required (or by older builds) may hold NULL.
	a.Profession = model.Profession(profession.String)

	return &a, nil
}

// uniqueViolationColumn inspects a driver error and, when it is a UNIQUE
// constraint violation, returns the qualified column ("table.column") of the
// violated constraint.
//
// SQLite reports the violated constraint in the error detail as
// "UNIQUE constraint failed: accounts.username"; the extended result code
// distinguishes a genuine UNIQUE violation from every other constraint
// failure before we go anywhere near that text.
func uniqueViolationColumn(err error) (string, bool) {
	var liteErr *sqlite3.Error
	if !errors.As(err, &liteErr) {
		return "", false
	}
	if liteErr.Code() != sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
		return "", false
	}

	detail := liteErr.Error()
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(detail, marker)
	if i < 0 {
		return "", false
	}

	col := detail[i+len(marker):]
	// The driver appends the numeric code in parentheses; trim everything
	// after the column token.
	if j := strings.IndexAny(col, " ("); j >= 0 {
		col = col[:j]
	}
	col = strings.TrimSuffix(strings.TrimSpace(col), ",")

	return col, col != ""
}
