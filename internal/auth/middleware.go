// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/cinebase/cinebase/internal/logging"
	"github.com/cinebase/cinebase/internal/models"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil when the request
// did not pass through RequireAuth.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// RequireAuth rejects requests without a valid bearer token. On success
// the resolved user is attached to the request context.
func RequireAuth(authenticator *BearerAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticator.Authenticate(r.Context(), r)
			if err != nil {
				if errors.Is(err, ErrStoreUnavailable) {
					logging.Ctx(r.Context()).Error().Err(err).Msg("Identity lookup failed during authentication")
					writeAuthError(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireOwner allows the request through only when the authenticated
// username equals the {username} path parameter. Must be mounted inside
// RequireAuth.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if user.Username != chi.URLParam(r, "username") {
			logging.Ctx(r.Context()).Warn().
				Str("username", user.Username).
				Str("target", chi.URLParam(r, "username")).
				Msg("Ownership check rejected request")
			writeAuthError(w, http.StatusForbidden, "Permission denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
