package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/model"
)

// =========================================================================
// CREATE ACCOUNT TESTS
// =========================================================================

func TestCreateAccount(t *testing.T) {
	db := newTestDB(t)

	account := &model.Account{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "ab12cd34",
		Salt:         "00ff00ff",
		Profession:   model.ProfessionStudent,
	}

	if err := db.CreateAccount(context.Background(), account); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	// The struct is filled in-place from the insert
	if account.ID == 0 {
		t.Error("CreateAccount() did not set account.ID")
	}
	if account.CreatedAt.IsZero() {
		t.Error("CreateAccount() did not set account.CreatedAt")
	}
}

func TestCreateAccount_AssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)

	first := createTestAccount(t, db, "alice", "alice@example.com")
	second := createTestAccount(t, db, "bob", "bob@example.com")

	if second.ID <= first.ID {
		t.Errorf("AUTOINCREMENT ids not increasing: first=%d second=%d", first.ID, second.ID)
	}
}

func TestCreateAccount_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestAccount(t, db, "alice", "alice@example.com")

	// Same username, different email → the username constraint fires
	duplicate := &model.Account{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "ab12",
		Salt:         "cd34",
	}
	err := db.CreateAccount(context.Background(), duplicate)
	if err == nil {
		t.Fatal("CreateAccount() should fail for a duplicate username")
	}
	if !errors.Is(err, apperror.ErrDuplicateUsername) {
		t.Errorf("error = %v, want ErrDuplicateUsername", err)
	}
	if errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Error("duplicate username must not also match ErrDuplicateEmail")
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestAccount(t, db, "alice", "alice@example.com")

	// Different username, same email → the email constraint fires
	duplicate := &model.Account{
		Username:     "bob",
		Email:        "alice@example.com",
		PasswordHash: "ab12",
		Salt:         "cd34",
	}
	err := db.CreateAccount(context.Background(), duplicate)
	if err == nil {
		t.Fatal("CreateAccount() should fail for a duplicate email")
	}
	if !errors.Is(err, apperror.ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}
	if errors.Is(err, apperror.ErrDuplicateUsername) {
		t.Error("duplicate email must not also match ErrDuplicateUsername")
	}
}

// =========================================================================
// GET ACCOUNT TESTS
// =========================================================================

func TestGetAccountByUsername(t *testing.T) {
	db := newTestDB(t)
	created := createTestAccount(t, db, "alice", "alice@example.com")

	found, err := db.GetAccountByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetAccountByUsername() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", found.Email, "alice@example.com")
	}
	// Credential material must round-trip exactly — verification depends on it
	if found.PasswordHash != created.PasswordHash {
		t.Errorf("PasswordHash = %q, want %q", found.PasswordHash, created.PasswordHash)
	}
	if found.Salt != created.Salt {
		t.Errorf("Salt = %q, want %q", found.Salt, created.Salt)
	}
	if found.Profession != model.ProfessionStudent {
		t.Errorf("Profession = %q, want %q", found.Profession, model.ProfessionStudent)
	}
}

func TestGetAccountByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetAccountByUsername(context.Background(), "ghost")
	if err == nil {
		t.Fatal("GetAccountByUsername() should fail for an unknown username")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetAccountByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestAccount(t, db, "alice", "alice@example.com")

	found, err := db.GetAccountByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetAccountByID() error = %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("Username = %q, want %q", found.Username, "alice")
	}
}

func TestGetAccountByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetAccountByID(context.Background(), 424242)
	if err == nil {
		t.Fatal("GetAccountByID() should fail for an unknown id")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// DRIVER ERROR INSPECTION TESTS
// =========================================================================

func TestUniqueViolationColumn_NonDriverError(t *testing.T) {
	// A plain error is not a constraint violation, whatever its text says.
	col, ok := uniqueViolationColumn(errors.New("UNIQUE constraint failed: accounts.username"))
	if ok {
		t.Errorf("uniqueViolationColumn() = %q, want no match for a non-driver error", col)
	}
}
