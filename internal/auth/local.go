// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package auth

import (
	"context"
	"errors"

	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/store"
)

// CredentialVerifier checks username/password pairs against the store.
type CredentialVerifier struct {
	users  UserResolver
	hasher *PasswordHasher
}

// NewCredentialVerifier creates a verifier backed by the given resolver.
func NewCredentialVerifier(users UserResolver, hasher *PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

// Verify returns the user when the password matches the stored digest.
// An unknown username and a wrong password both return
// ErrInvalidCredentials, so login responses cannot be used to probe
// which usernames exist.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := v.users.UserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	if !v.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
