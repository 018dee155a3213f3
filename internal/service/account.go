// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services receive repository INTERFACES, not the concrete sqlite.DB — tests
// swap in fakes, and nothing here imports database/sql or knows any SQL.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/sakif/vocabloury/internal/apperror"
	"github.com/sakif/vocabloury/internal/auth"
	"github.com/sakif/vocabloury/internal/model"
	"github.com/sakif/vocabloury/internal/repository"
)

// Validation constants — referenced by the rules below and by error messages.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 6
	MaxPasswordLength = 50
)

// usernamePattern: letters, digits, underscore, hyphen. Length is checked
// separately so the error message can name the actual rule broken.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// emailPattern is the usual pragmatic local@domain.tld shape — not RFC 5322,
// just enough to catch typos before they become unreachable accounts.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AccountService handles the two user-facing verbs — register and login —
// composing the password hasher and the account store with input validation.
type AccountService struct {
	accounts  repository.AccountRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAccountService creates an AccountService with all dependencies injected.
func NewAccountService(
	accounts repository.AccountRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterInput is everything the signup form submits.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Profession model.Profession
}

// Register validates the input, hashes the password under a fresh salt, and
// persists the new account.
//
// FAIL-FAST VALIDATION:
// Every field is checked BEFORE any storage call. The first failing rule
// comes back as a field-level validation error and nothing is written — a
// rejected registration has zero side effects, so the UI can let the user
// fix the field and resubmit freely.
//
// Duplicate username/email errors from the store propagate verbatim (the
// form highlights the colliding field); any other storage fault is logged
// with detail and surfaced as a generic registration failure.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validateProfession(in.Profession); err != nil {
		return nil, err
	}

	hash, salt, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service/account: hashing password: %w", err)
	}

	account := &model.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Salt:         salt,
		Profession:   in.Profession,
	}

	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, apperror.ErrDuplicateUsername) || errors.Is(err, apperror.ErrDuplicateEmail) {
			return nil, err
		}
		s.logger.Error("registration failed",
			slog.String("username", in.Username),
			slog.String("error", err.Error()),
		)
		return nil, &apperror.AppError{
			Err:     apperror.ErrStore,
			Message: "registration failed",
		}
	}

	s.logger.Info("account registered",
		slog.Int64("accountID", account.ID),
		slog.String("username", account.Username),
		slog.String("profession", string(account.Profession)),
	)

	return account, nil
}

// Login verifies the credentials and returns the account identity.
//
// UNIFORM FAILURE:
// Unknown username and wrong password return the SAME error. Distinguishing
// them would let anyone enumerate which usernames are registered by watching
// which failure they get.
func (s *AccountService) Login(ctx context.Context, username, password string) (*model.Account, error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/account: looking up %q: %w", username, err)
	}

	if !s.passwords.Verify(password, account.PasswordHash, account.Salt) {
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("login succeeded",
		slog.Int64("accountID", account.ID),
		slog.String("username", account.Username),
	)

	return account, nil
}

// GetProfession returns the profession stored for the username. The zero
// Profession means the account predates profession selection.
func (s *AccountService) GetProfession(ctx context.Context, username string) (model.Profession, error) {
	account, err := s.accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("service/account: getting profession for %q: %w", username, err)
	}
	return account.Profession, nil
}

// GetAccountByID returns the account for the surrogate key. Used by the
// /api/me handler after the middleware validates the JWT.
func (s *AccountService) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	account, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/account: fetching account %d: %w", id, err)
	}
	return account, nil
}

// =========================================================================
// VALIDATION RULES
// =========================================================================

func validateUsername(username string) error {
	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if len(username) < MinUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at most %d characters", MaxUsernameLength))
	}
	if !usernamePattern.MatchString(username) {
		return apperror.ValidationFailed("username",
			"username can only contain letters, numbers, _ and -")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperror.ValidationFailed("email", "please enter a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at most %d characters", MaxPasswordLength))
	}
	return nil
}

func validateProfession(p model.Profession) error {
	if p == "" {
		return apperror.ValidationFailed("profession", "please select a profession")
	}
	if !p.Valid() {
		return apperror.ValidationFailed("profession",
			fmt.Sprintf("unknown profession %q", string(p)))
	}
	return nil
}
