package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/vocabloury/internal/auth"
	"github.com/sakif/vocabloury/internal/model"
	"github.com/sakif/vocabloury/internal/service"
)

// WordsHandler exposes the user's word history: the searched-words list, the
// save/unsave actions, and the dashboard count.
//
// Every route here sits behind RequireAuth. The username the history is keyed
// by always comes from the authenticated account, never from the request — a
// client cannot read or edit anyone else's list by naming them.
type WordsHandler struct {
	words    *service.WordsService
	accounts *service.AccountService
	logger   *slog.Logger
}

// NewWordsHandler creates a WordsHandler with its dependencies injected.
func NewWordsHandler(
	words *service.WordsService,
	accounts *service.AccountService,
	logger *slog.Logger,
) *WordsHandler {
	return &WordsHandler{
		words:    words,
		accounts: accounts,
		logger:   logger,
	}
}

// appendWordRequest is the save-word payload. Meaning is whatever definition
// the UI had on screen; it may be empty.
type appendWordRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// username resolves the authenticated account to the username history rows
// are keyed by. Returns false after writing the error response.
func (h *WordsHandler) username(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return "", false
	}

	account, err := h.accounts.GetAccountByID(r.Context(), accountID)
	if err != nil {
		h.logger.Error("words: account lookup failed", slog.Int64("accountID", accountID))
		writeError(w, err)
		return "", false
	}
	return account.Username, true
}

// HandleList returns the account's saved words, most recent first.
//
// HTTP: GET /api/words
func (h *WordsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}

	entries, err := h.words.List(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	// An empty history is [], not null — the UI iterates without nil checks.
	if entries == nil {
		entries = []model.WordHistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleAppend records a word lookup.
//
// HTTP: POST /api/words
func (h *WordsHandler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}

	var req appendWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := h.words.Append(r.Context(), username, req.Word, req.Meaning); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"word": req.Word})
}

// HandleDelete removes a saved word.
//
// HTTP: DELETE /api/words/{word}
//
// The word arrives URL-encoded in the path; chi decodes it. Deleting a word
// that was never saved is still 200 — the end state is the same.
func (h *WordsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}

	word := chi.URLParam(r, "word")
	if err := h.words.Delete(r.Context(), username, word); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"word": word})
}

// HandleCount returns the dashboard's "words learned" number.
//
// HTTP: GET /api/words/count
func (h *WordsHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(w, r)
	if !ok {
		return
	}

	count, err := h.words.Count(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}
