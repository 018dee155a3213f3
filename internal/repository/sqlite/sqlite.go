// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// VocabLoury is a single-user desktop app. Its entire persistent state — the
// accounts, the remember-me tokens, the word history — is one local database
// file per installation. SQLite is exactly that: an embedded database living
// inside the binary, no server to install or manage, ":memory:" for tests.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means a C compiler on every build machine
// and painful cross-compilation. For a desktop app shipped to three platforms
// that's a real cost. modernc.org/sqlite is a pure Go translation of SQLite —
// works everywhere Go works.
//
// CONNECTION DISCIPLINE:
// The original implementation opened a fresh connection for every method
// call. Here a single *sql.DB pool is opened once at startup and shared; the
// pool scopes acquisition and guarantees release on every exit path, and
// multi-statement operations (delete-then-insert token rotation) run inside
// one transaction so no caller can observe the intermediate state.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods for
// accounts, auth tokens, and word history.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the schema.
//
// dbPath examples:
//   - "data/vocabloury.db" → file-based database (persistent)
//   - ":memory:"           → in-memory database (tests; lost on close)
//
// Failure here is fatal at startup by contract: the application cannot run
// without its credential store, so callers log the error and exit.
func New(dbPath string) (*DB, error) {
	// sql.Open only creates the pool manager; Ping forces a real connection
	// so a bad path or missing permissions surfaces now, not on first query.
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection is all SQLite can write on anyway, and it makes
	// ":memory:" behave: with a pool, every new connection would get its own
	// fresh empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight. With the UI shell,
	// the notification timer, and the API all hitting the same file, the
	// default whole-file write lock would cause avoidable stalls.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. auth_tokens.user_id
	// references accounts.id, so turn enforcement on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New — it
// flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate idempotently ensures the three tables exist.
//
// CREATE TABLE IF NOT EXISTS is safe to run on every process start: a fresh
// install gets the full schema, an existing install is untouched. The schema
// matches what previous versions of the app created, so existing database
// files keep working.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			username   TEXT UNIQUE NOT NULL,
			email      TEXT UNIQUE NOT NULL,
			password   TEXT NOT NULL,
			salt       TEXT NOT NULL,
			profession TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}

	// expires_at is stored as unix seconds (INTEGER) so expiry arithmetic
	// never depends on how a driver happens to serialise timestamps.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS auth_tokens (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    INTEGER REFERENCES accounts(id),
			token      TEXT NOT NULL,
			expires_at TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_auth_tokens_token ON auth_tokens(token);
		CREATE INDEX IF NOT EXISTS idx_auth_tokens_user_id ON auth_tokens(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating auth_tokens table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS word_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			username    TEXT NOT NULL,
			word        TEXT NOT NULL,
			meaning     TEXT,
			searched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_word_history_username ON word_history(username);
	`)
	if err != nil {
		return fmt.Errorf("creating word_history table: %w", err)
	}

	return nil
}
