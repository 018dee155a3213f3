package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/vocabloury/internal/auth"
	"github.com/sakif/vocabloury/internal/model"
	"github.com/sakif/vocabloury/internal/service"
)

// AuthHandler exposes the account lifecycle over the local API.
//
// HANDLER RESPONSIBILITIES:
//   - HandleRegister → create an account from the signup form
//   - HandleLogin    → verify credentials, mint the API token, optionally a
//     remember-me token
//   - HandleRemember → silent re-auth: trade a stored remember token for a
//     fresh API token on startup
//   - HandleLogout   → revoke the remember token
//   - HandleMe       → return the logged-in account's profile
//
// TWO TOKENS, TWO JOBS:
// The JWT is the per-session API credential — short-lived, stateless, sent as
// a bearer header on every call. The remember token is the long-lived
// revocable credential the UI persists between launches; it never
// authenticates an API call directly, it only buys a fresh JWT here.
type AuthHandler struct {
	accounts *service.AccountService
	sessions *service.SessionService
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(
	accounts *service.AccountService,
	sessions *service.SessionService,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// registerRequest is the signup form payload.
type registerRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Profession string `json:"profession"`
}

// loginRequest is the login form payload. RememberMe asks for a persistent
// token alongside the session.
type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// rememberRequest carries the token the UI read back from its side-channel
// file on startup.
type rememberRequest struct {
	RememberToken string `json:"rememberToken"`
}

// sessionResponse is what both login and silent re-auth return.
type sessionResponse struct {
	Token         string         `json:"token"`
	RememberToken string         `json:"rememberToken,omitempty"`
	Account       *model.Account `json:"account"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/auth/register
//
// Returns 201 with the account on success. Validation failures come back as
// 400 with the offending field named; username/email collisions as 409. The
// client logs in separately — registration never issues tokens.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be valid JSON",
		})
		return
	}

	account, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Profession: model.Profession(req.Profession),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// HandleLogin verifies credentials and opens a session.
//
// HTTP: POST /api/auth/login
//
// On success the response carries a short-lived API token, the account, and —
// only when rememberMe was set — a fresh remember token. Issuing the remember
// token replaces any previous one for the account, so logging in on a second
// machine silently signs out the first.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be valid JSON",
		})
		return
	}

	account, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	apiToken, err := h.tokens.Generate(account.ID)
	if err != nil {
		h.logger.Error("login: token generation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "login failed",
		})
		return
	}

	resp := sessionResponse{Token: apiToken, Account: account}

	if req.RememberMe {
		rememberToken, err := h.sessions.Issue(r.Context(), account.ID)
		if err != nil {
			// The login itself succeeded — degrade rather than fail it.
			h.logger.Error("login: issuing remember token failed",
				slog.Int64("accountID", account.ID),
				slog.String("error", err.Error()),
			)
		} else {
			resp.RememberToken = rememberToken
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRemember performs silent re-authentication.
//
// HTTP: POST /api/auth/remember
//
// An invalid, expired, or revoked token gets a plain 401 — the UI falls back
// to the login screen. A storage fault gets a 500 so the UI can say something
// is actually wrong instead of quietly asking for a password.
func (h *AuthHandler) HandleRemember(w http.ResponseWriter, r *http.Request) {
	var req rememberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be valid JSON",
		})
		return
	}

	accountID, _, err := h.sessions.ValidateToAccount(r.Context(), req.RememberToken)
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.accounts.GetAccountByID(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	apiToken, err := h.tokens.Generate(account.ID)
	if err != nil {
		h.logger.Error("remember: token generation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "re-authentication failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: apiToken, Account: account})
}

// HandleLogout revokes the presented remember token.
//
// HTTP: POST /api/auth/logout
//
// Idempotent: revoking an already-dead token is still 200. The short-lived
// API token is not revocable — it simply expires; "logout" means the
// persistent credential dies and the next launch shows the login screen.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req rememberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := h.sessions.Revoke(r.Context(), req.RememberToken); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the authenticated account's profile.
//
// HTTP: GET /api/me
// Auth: required (RequireAuth middleware sets the account ID in context)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	account, err := h.accounts.GetAccountByID(r.Context(), accountID)
	if err != nil {
		h.logger.Error("HandleMe: account lookup failed", slog.Int64("accountID", accountID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}
