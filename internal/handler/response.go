package handler

// RESPONSE HELPERS:
// Every error leaving the API has the same JSON shape:
//   {"error": "validation_error", "message": "username is required", "field": "username"}
//
// The UI never parses prose — it branches on "error" and highlights "field".
// The mapping from domain errors to HTTP status lives here and only here;
// the service layer stays protocol-ignorant.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/vocabloury/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`           // machine-readable type, e.g. "duplicate_username"
	Message string `json:"message"`         // human-readable description for the form
	Field   string `json:"field,omitempty"` // which input to highlight, when known
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must go out before the body — Encode writes, and after the first
// write header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status and sends it.
//
// errors.Is walks the whole chain, so it doesn't matter how many fmt.Errorf
// wraps the service added on the way up — the sentinel is still found.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			errorType = "invalid_credentials"
		case errors.Is(err, apperror.ErrTokenInvalid):
			status = http.StatusUnauthorized
			errorType = "token_invalid"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrDuplicateUsername):
			status = http.StatusConflict
			errorType = "duplicate_username"
		case errors.Is(err, apperror.ErrDuplicateEmail):
			status = http.StatusConflict
			errorType = "duplicate_email"
		case errors.Is(err, apperror.ErrStore):
			status = http.StatusInternalServerError
			errorType = "storage_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
		return
	}

	// Unknown error — generic 500. The raw message may contain SQL or file
	// paths; it goes to the log, never to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
