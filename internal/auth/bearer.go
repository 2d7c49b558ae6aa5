// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/store"
)

// BearerAuthenticator validates JWT bearer tokens on protected requests.
//
// A valid signature alone is not enough: the subject is re-resolved from
// the store on every request, so tokens for deleted accounts stop working
// the moment the account is gone.
type BearerAuthenticator struct {
	tokens *TokenManager
	users  UserResolver
}

// NewBearerAuthenticator creates a bearer authenticator.
func NewBearerAuthenticator(tokens *TokenManager, users UserResolver) *BearerAuthenticator {
	return &BearerAuthenticator{tokens: tokens, users: users}
}

// Authenticate extracts and validates the bearer token from the request,
// returning the current user record for the token's subject.
func (a *BearerAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*models.User, error) {
	tokenStr := extractBearer(r)
	if tokenStr == "" {
		return nil, ErrNoCredentials
	}

	claims, err := a.tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := a.resolve(ctx, claims)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	return user, nil
}

// resolve looks the subject up by ID, falling back to the username claim
// for tokens minted before IDs were carried in "uid".
func (a *BearerAuthenticator) resolve(ctx context.Context, claims *Claims) (*models.User, error) {
	if claims.UserID != "" {
		return a.users.UserByID(ctx, claims.UserID)
	}
	if claims.Username != "" {
		return a.users.UserByUsername(ctx, claims.Username)
	}
	return nil, store.ErrNotFound
}

// extractBearer pulls the token out of the Authorization header.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
