package model

import "time"

// WordHistoryEntry is one row of a user's word lookup log.
//
// The log is append-only: every search or save creates a new row, and the same
// word can appear many times (repeated lookups are a real signal — the UI's
// dashboard counts them). Rows are only ever deleted when the user removes a
// saved word, which removes every row for that (username, word) pair.
//
// WHY username AND NOT A FOREIGN KEY?
// The original schema denormalizes here: word history hangs off the username
// string, not accounts.id. We keep that shape — the word history is owned by
// whoever holds the name, and there is no account deletion in this core that
// would leave rows orphaned.
type WordHistoryEntry struct {
	ID         int64     `json:"id"         db:"id"`
	Username   string    `json:"username"   db:"username"`
	Word       string    `json:"word"       db:"word"`
	Meaning    string    `json:"meaning"    db:"meaning"` // may be empty
	SearchedAt time.Time `json:"searchedAt" db:"searched_at"`
}
