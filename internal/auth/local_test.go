// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/store"
)

// fakeResolver serves canned users without a database.
type fakeResolver struct {
	byUsername map[string]*models.User
	byID       map[string]*models.User
	err        error
}

func (f *fakeResolver) UserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byUsername[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeResolver) UserByID(_ context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return user, nil
}

func newFakeResolver(users ...*models.User) *fakeResolver {
	f := &fakeResolver{
		byUsername: map[string]*models.User{},
		byID:       map[string]*models.User{},
	}
	for _, u := range users {
		f.byUsername[u.Username] = u
		f.byID[u.ID] = u
	}
	return f
}

func TestCredentialVerifier(t *testing.T) {
	hasher := NewPasswordHasher(4)
	digest, err := hasher.Hash("open sesame")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	alice := &models.User{ID: "id-1", Username: "alice1", PasswordHash: digest}
	verifier := NewCredentialVerifier(newFakeResolver(alice), hasher)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, err := verifier.Verify(ctx, "alice1", "open sesame")
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if user.ID != "id-1" {
			t.Errorf("ID = %q, want id-1", user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "alice1", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		// Same error as a wrong password, so callers cannot probe
		// which usernames exist.
		_, err := verifier.Verify(ctx, "nobody", "open sesame")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestCredentialVerifierStoreFailure(t *testing.T) {
	hasher := NewPasswordHasher(4)
	verifier := NewCredentialVerifier(&fakeResolver{err: errors.New("disk on fire")}, hasher)

	_, err := verifier.Verify(context.Background(), "alice1", "open sesame")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}
