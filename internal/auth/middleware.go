package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var errNoBearerToken = errors.New("auth: missing bearer token")

// contextKey is an unexported type for context keys in this package.
// Using a package-private type means only this package can read or write the
// account ID in a request context — no string-key collisions with other code.
type contextKey string

const accountIDKey contextKey = "accountID"

// RequireAuth is a middleware enforcing authentication on protected routes.
//
// The UI shell sends the JWT as a bearer token:
//
//	Authorization: Bearer <jwt>
//
// If the header is missing or the token doesn't validate, the request stops
// here with 401; otherwise the account ID lands in the request context for
// handlers to read via AccountIDFromContext.
//
// WHY A HEADER AND NOT A COOKIE?
// The client is the desktop UI shell talking to a loopback server, not a
// browser — there's no cross-site surface to defend with HttpOnly cookies,
// and an explicit header keeps the UI's token handling visible.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, err := extractAccountID(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext retrieves the authenticated account's ID from the
// request context.
//
// Returns (0, false) on an anonymous request, (id, true) when RequireAuth
// validated a token upstream.
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok && id > 0
}

// extractAccountID reads and validates the bearer token on the request.
func extractAccountID(r *http.Request, tokens *TokenService) (int64, error) {
	header := r.Header.Get("Authorization")
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return 0, errNoBearerToken
	}

	return tokens.Validate(tokenStr)
}
