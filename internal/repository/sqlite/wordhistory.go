package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/model"
	"github.com/sakif/vocabloury/internal/repository"
)

// compile-time check that *DB implements repository.WordHistoryRepository
var _ repository.WordHistoryRepository = (*DB)(nil)

// AppendWord records one word lookup for the user. The log is append-only —
// looking the same word up twice creates two rows, and that's intentional.
func (db *DB) AppendWord(ctx context.Context, username, word, meaning string) error {
	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO word_history (username, word, meaning, searched_at)
		 VALUES (?, ?, ?, ?)`,
		username, word, meaning, time.Now(),
	); err != nil {
		return apperror.Store("appending word history", err)
	}
	return nil
}

// ListWords returns the user's full history, most recent first.
//
// The id tiebreaker keeps the order stable when several lookups land within
// the same timestamp granularity.
func (db *DB) ListWords(ctx context.Context, username string) ([]model.WordHistoryEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, word, meaning, searched_at
		 FROM word_history
		 WHERE username = ?
		 ORDER BY searched_at DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, apperror.Store("listing word history", err)
	}
	// rows MUST be closed, or the connection leaks back into the pool held.
	defer rows.Close()

	var entries []model.WordHistoryEntry
	for rows.Next() {
		var (
			e       model.WordHistoryEntry
			meaning sql.NullString // databases written by older builds hold NULL here
		)
		if err := rows.Scan(&e.ID, &e.Username, &e.Word, &meaning, &e.SearchedAt); err != nil {
			return nil, apperror.Store("scanning word history row", err)
		}
		e.Meaning = meaning.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("iterating word history", err)
	}

	return entries, nil
}

// DeleteWord removes every history row for the exact (username, word) pair —
// a word saved three times disappears from the saved list in one action.
func (db *DB) DeleteWord(ctx context.Context, username, word string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM word_history WHERE username = ? AND word = ?`,
		username, word,
	); err != nil {
		return apperror.Store("deleting word history", err)
	}
	return nil
}

// CountWords returns the user's total lookup count for the dashboard.
func (db *DB) CountWords(ctx context.Context, username string) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM word_history WHERE username = ?`,
		username,
	).Scan(&count); err != nil {
		return 0, apperror.Store("counting word history", err)
	}
	return count, nil
}
