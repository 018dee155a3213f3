package sqlite

import (
	"context"
	"testing"
)

// =========================================================================
// APPEND + LIST TESTS
// =========================================================================

func TestAppendAndListWords(t *testing.T) {
	db := newTestDB(t)

	if err := db.AppendWord(context.Background(), "alice", "ephemeral", "lasting a very short time"); err != nil {
		t.Fatalf("AppendWord() error = %v", err)
	}

	entries, err := db.ListWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Word != "ephemeral" {
		t.Errorf("Word = %q, want %q", entries[0].Word, "ephemeral")
	}
	if entries[0].Meaning != "lasting a very short time" {
		t.Errorf("Meaning = %q, want the stored meaning", entries[0].Meaning)
	}
	if entries[0].SearchedAt.IsZero() {
		t.Error("SearchedAt was not set on insert")
	}
}

func TestAppendWord_EmptyMeaningAllowed(t *testing.T) {
	db := newTestDB(t)

	// The UI stores whatever the dictionary API returned — sometimes nothing.
	if err := db.AppendWord(context.Background(), "alice", "ephemeral", ""); err != nil {
		t.Fatalf("AppendWord() with empty meaning: %v", err)
	}

	entries, err := db.ListWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Meaning != "" {
		t.Errorf("entries = %+v, want one entry with empty meaning", entries)
	}
}

func TestListWords_MostRecentFirst(t *testing.T) {
	db := newTestDB(t)

	// Insert in a known order; the listing must come back reversed.
	words := []string{"first", "second", "third"}
	for _, w := range words {
		if err := db.AppendWord(context.Background(), "alice", w, ""); err != nil {
			t.Fatalf("AppendWord(%q): %v", w, err)
		}
	}

	entries, err := db.ListWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	for i, want := range []string{"third", "second", "first"} {
		if entries[i].Word != want {
			t.Errorf("entries[%d].Word = %q, want %q", i, entries[i].Word, want)
		}
	}
}

func TestListWords_ScopedToUser(t *testing.T) {
	db := newTestDB(t)

	_ = db.AppendWord(context.Background(), "alice", "ephemeral", "")
	_ = db.AppendWord(context.Background(), "bob", "perennial", "")

	entries, err := db.ListWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Word != "ephemeral" {
		t.Errorf("alice's entries = %+v, want only her own word", entries)
	}
}

func TestListWords_EmptyHistory(t *testing.T) {
	db := newTestDB(t)

	entries, err := db.ListWords(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestAppendWord_DuplicatesAllowed(t *testing.T) {
	db := newTestDB(t)

	// Repeated lookups of the same word each get their own row.
	for i := 0; i < 3; i++ {
		if err := db.AppendWord(context.Background(), "alice", "ephemeral", ""); err != nil {
			t.Fatalf("AppendWord() #%d: %v", i, err)
		}
	}

	entries, err := db.ListWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3 (duplicates are allowed)", len(entries))
	}
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestDeleteWord_RemovesAllRowsForPair(t *testing.T) {
	db := newTestDB(t)

	_ = db.AppendWord(context.Background(), "alice", "ephemeral", "")
	_ = db.AppendWord(context.Background(), "alice", "ephemeral", "short-lived")
	_ = db.AppendWord(context.Background(), "alice", "perennial", "")
	_ = db.AppendWord(context.Background(), "bob", "ephemeral", "")

	if err := db.DeleteWord(context.Background(), "alice", "ephemeral"); err != nil {
		t.Fatalf("DeleteWord() error = %v", err)
	}

	entries, err := db.ListWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	for _, e := range entries {
		if e.Word == "ephemeral" {
			t.Errorf("DeleteWord() left a row behind: %+v", e)
		}
	}
	if len(entries) != 1 || entries[0].Word != "perennial" {
		t.Errorf("alice's remaining entries = %+v, want just perennial", entries)
	}

	// Bob's identical word must be untouched — the pair is (username, word)
	bobEntries, _ := db.ListWords(context.Background(), "bob")
	if len(bobEntries) != 1 {
		t.Errorf("bob's entries = %+v, want his ephemeral row intact", bobEntries)
	}
}

func TestDeleteWord_UnknownIsNoError(t *testing.T) {
	db := newTestDB(t)

	if err := db.DeleteWord(context.Background(), "alice", "never-saved"); err != nil {
		t.Errorf("DeleteWord() on unknown pair = %v, want nil", err)
	}
}

// =========================================================================
// COUNT TESTS
// =========================================================================

func TestCountWords(t *testing.T) {
	db := newTestDB(t)

	if count, err := db.CountWords(context.Background(), "alice"); err != nil || count != 0 {
		t.Errorf("CountWords() on empty history = (%d, %v), want (0, nil)", count, err)
	}

	_ = db.AppendWord(context.Background(), "alice", "ephemeral", "")
	_ = db.AppendWord(context.Background(), "alice", "ephemeral", "")
	_ = db.AppendWord(context.Background(), "bob", "perennial", "")

	count, err := db.CountWords(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CountWords() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountWords() = %d, want 2", count)
	}
}
