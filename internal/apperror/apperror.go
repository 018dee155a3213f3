// Package apperror defines the application's error taxonomy.
//
// Services return these instead of raw storage/driver errors so that callers
// can branch with errors.Is/errors.As instead of sniffing error strings.
// The HTTP layer maps them to status codes in one place (handler.writeError).
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors — the taxonomy callers match against with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrStore              = errors.New("store error")
)

// AppError carries a sentinel plus the human-readable context around it.
type AppError struct {
	Err     error  // one of the sentinels above (matched by errors.Is)
	Message string // human-readable error message
	Field   string // optional: input field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a resource does not exist.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

// ValidationFailed reports that a single input field broke a rule.
// Validation runs before any storage call, so a validation error guarantees
// no side effects happened.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateUsername reports a UNIQUE violation on accounts.username.
func DuplicateUsername(username string) *AppError {
	return &AppError{
		Err:     ErrDuplicateUsername,
		Message: fmt.Sprintf("username %q is already taken", username),
		Field:   "username",
	}
}

// DuplicateEmail reports a UNIQUE violation on accounts.email.
func DuplicateEmail(email string) *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: fmt.Sprintf("email %q is already registered", email),
		Field:   "email",
	}
}

// InvalidCredentials reports a failed login.
//
// Deliberately uninformative: the same error comes back for an unknown
// username and for a wrong password, so a caller (or an attacker driving the
// UI) cannot probe which usernames exist.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid username or password",
	}
}

// TokenInvalid reports a remember-me token that cannot be used.
//
// Returned uniformly for tokens that never existed and tokens that exist but
// expired — callers must not be able to distinguish the two.
func TokenInvalid() *AppError {
	return &AppError{
		Err:     ErrTokenInvalid,
		Message: "invalid or expired token",
	}
}

// Store wraps an underlying storage fault. The wrapped chain keeps the detail
// for logs; the Message is what the UI gets to see.
func Store(op string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %v", ErrStore, op, err),
		Message: "a storage error occurred",
	}
}
