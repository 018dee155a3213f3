package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/vocabloury/internal/apperror"
)

// =========================================================================
// FAKES
// =========================================================================

// fakeTokenRepo is an in-memory implementation of repository.TokenRepository
// that reproduces the store's delete-then-insert rotation and caller-clock
// expiry comparison.
type fakeTokenRepo struct {
	// token → record
	tokens map[string]fakeTokenRecord
	// username returned for any account the fake resolves
	usernames map[int64]string
	failWith  error
}

type fakeTokenRecord struct {
	accountID int64
	expiresAt time.Time
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{
		tokens:    make(map[string]fakeTokenRecord),
		usernames: make(map[int64]string),
	}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, accountID int64, token string, expiresAt time.Time) error {
	if f.failWith != nil {
		return f.failWith
	}
	// Rotation: drop every existing token for this account first
	for t, rec := range f.tokens {
		if rec.accountID == accountID {
			delete(f.tokens, t)
		}
	}
	f.tokens[token] = fakeTokenRecord{accountID: accountID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenRepo) GetLiveToken(_ context.Context, token string, now time.Time) (int64, string, error) {
	if f.failWith != nil {
		return 0, "", f.failWith
	}
	rec, ok := f.tokens[token]
	if !ok || !rec.expiresAt.After(now) {
		return 0, "", apperror.NotFound("token", "presented value")
	}
	return rec.accountID, f.usernames[rec.accountID], nil
}

func (f *fakeTokenRepo) DeleteToken(_ context.Context, token string) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.tokens, token)
	return nil
}

func newTestSessionService(repo *fakeTokenRepo) *SessionService {
	return NewSessionService(repo, testLogger())
}

// =========================================================================
// ISSUE TESTS
// =========================================================================

func TestIssue_ReturnsValidatableToken(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.usernames[7] = "alice"
	svc := newTestSessionService(repo)

	token, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if len(token) != 64 {
		t.Errorf("len(token) = %d, want 64 hex characters", len(token))
	}

	accountID, username, err := svc.ValidateToAccount(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToAccount() error = %v", err)
	}
	if accountID != 7 || username != "alice" {
		t.Errorf("resolved to (%d, %q), want (7, %q)", accountID, username, "alice")
	}
}

func TestIssue_ReplacesPreviousToken(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.usernames[7] = "alice"
	svc := newTestSessionService(repo)

	first, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("first Issue() error = %v", err)
	}
	second, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("second Issue() error = %v", err)
	}
	if first == second {
		t.Fatal("two Issue() calls returned the same token")
	}

	// The first token is now dead, the second lives
	if _, err := svc.Validate(context.Background(), first); !errors.Is(err, apperror.ErrTokenInvalid) {
		t.Errorf("old token error = %v, want ErrTokenInvalid", err)
	}
	if _, err := svc.Validate(context.Background(), second); err != nil {
		t.Errorf("new token error = %v, want nil", err)
	}
}

func TestIssue_StoreFaultPropagates(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.failWith = apperror.Store("inserting token", errors.New("disk full"))
	svc := newTestSessionService(repo)

	_, err := svc.Issue(context.Background(), 7)
	if !errors.Is(err, apperror.ErrStore) {
		t.Errorf("error = %v, want ErrStore", err)
	}
}

// =========================================================================
// VALIDATE TESTS
// =========================================================================

func TestValidate_UnknownToken(t *testing.T) {
	svc := newTestSessionService(newFakeTokenRepo())

	_, err := svc.Validate(context.Background(), "deadbeef")
	if !errors.Is(err, apperror.ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidate_EmptyToken(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := newTestSessionService(repo)

	// Must short-circuit without touching the store — an empty side-channel
	// file is the normal first-run state, not a fault.
	repo.failWith = errors.New("store must not be called")
	_, err := svc.Validate(context.Background(), "")
	if !errors.Is(err, apperror.ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.usernames[7] = "alice"
	// Plant a token that expired an hour ago, bypassing Issue
	repo.tokens["expiredtoken"] = fakeTokenRecord{accountID: 7, expiresAt: time.Now().Add(-time.Hour)}
	svc := newTestSessionService(repo)

	_, err := svc.Validate(context.Background(), "expiredtoken")
	if !errors.Is(err, apperror.ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidate_ExpiredAndUnknownIndistinguishable(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.tokens["expiredtoken"] = fakeTokenRecord{accountID: 7, expiresAt: time.Now().Add(-time.Hour)}
	svc := newTestSessionService(repo)

	_, errExpired := svc.Validate(context.Background(), "expiredtoken")
	_, errUnknown := svc.Validate(context.Background(), "neverissued")
	if errExpired.Error() != errUnknown.Error() {
		t.Errorf("failures differ: %q vs %q", errExpired.Error(), errUnknown.Error())
	}
}

func TestValidate_StoreFaultIsNotTokenInvalid(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.failWith = apperror.Store("querying token", errors.New("database is locked"))
	svc := newTestSessionService(repo)

	_, err := svc.Validate(context.Background(), "sometoken")
	if errors.Is(err, apperror.ErrTokenInvalid) {
		t.Error("store fault was folded into ErrTokenInvalid")
	}
	if !errors.Is(err, apperror.ErrStore) {
		t.Errorf("error = %v, want ErrStore in the chain", err)
	}
}

// =========================================================================
// REVOKE TESTS
// =========================================================================

func TestRevoke(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.usernames[7] = "alice"
	svc := newTestSessionService(repo)

	token, err := svc.Issue(context.Background(), 7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := svc.Validate(context.Background(), token); !errors.Is(err, apperror.ErrTokenInvalid) {
		t.Errorf("revoked token error = %v, want ErrTokenInvalid", err)
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.usernames[7] = "alice"
	svc := newTestSessionService(repo)

	token, _ := svc.Issue(context.Background(), 7)
	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("first Revoke() error = %v", err)
	}
	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Errorf("second Revoke() error = %v, want nil", err)
	}
}

func TestRevoke_EmptyTokenIsNoOp(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.failWith = errors.New("store must not be called")
	svc := newTestSessionService(repo)

	if err := svc.Revoke(context.Background(), ""); err != nil {
		t.Errorf("Revoke(\"\") = %v, want nil", err)
	}
}
