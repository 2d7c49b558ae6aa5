// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package auth implements credential verification and JWT bearer
// authentication for the catalog API.
//
// Two entry points exist: CredentialVerifier checks username/password
// pairs at login, and BearerAuthenticator validates JWT bearer tokens on
// every protected request. Token validation re-resolves the user from the
// store, so a deleted account is locked out immediately even though
// tokens themselves cannot be revoked.
package auth

import (
	"context"
	"errors"

	"github.com/cinebase/cinebase/internal/models"
)

// Standard authentication errors. Handlers map these onto HTTP status
// codes; the distinction between "no credentials" and "bad credentials"
// never leaks which username exists.
var (
	// ErrNoCredentials indicates no credentials were provided.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials indicates credentials have expired.
	ErrExpiredCredentials = errors.New("credentials expired")

	// ErrStoreUnavailable indicates identity lookup failed for reasons
	// other than the user not existing.
	ErrStoreUnavailable = errors.New("identity store unavailable")
)

// UserResolver is the slice of the store the authenticators need.
type UserResolver interface {
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}
