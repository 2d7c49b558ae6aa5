// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinebase/cinebase/internal/models"
)

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/users/alice1", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestBearerAuthenticate(t *testing.T) {
	m := newTestTokenManager(t, time.Hour)
	alice := &models.User{ID: "id-1", Username: "alice1"}
	authn := NewBearerAuthenticator(m, newFakeResolver(alice))
	ctx := context.Background()

	token, err := m.Issue(alice)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	user, err := authn.Authenticate(ctx, bearerRequest(token))
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Username != "alice1" {
		t.Errorf("Username = %q, want alice1", user.Username)
	}
}

func TestBearerAuthenticateNoHeader(t *testing.T) {
	m := newTestTokenManager(t, time.Hour)
	authn := NewBearerAuthenticator(m, newFakeResolver())

	_, err := authn.Authenticate(context.Background(), bearerRequest(""))
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("error = %v, want ErrNoCredentials", err)
	}
}

func TestBearerAuthenticateMalformedHeader(t *testing.T) {
	m := newTestTokenManager(t, time.Hour)
	authn := NewBearerAuthenticator(m, newFakeResolver())
	ctx := context.Background()

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		r := httptest.NewRequest(http.MethodGet, "/users/alice1", nil)
		r.Header.Set("Authorization", header)
		if _, err := authn.Authenticate(ctx, r); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("Authenticate(header=%q) error = %v, want ErrNoCredentials", header, err)
		}
	}
}

func TestBearerAuthenticateDeletedUser(t *testing.T) {
	m := newTestTokenManager(t, time.Hour)
	alice := &models.User{ID: "id-1", Username: "alice1"}
	// The resolver never saw alice, as if the account was deleted after
	// the token was issued.
	authn := NewBearerAuthenticator(m, newFakeResolver())

	token, err := m.Issue(alice)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = authn.Authenticate(context.Background(), bearerRequest(token))
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestBearerAuthenticateExpiredToken(t *testing.T) {
	m := newTestTokenManager(t, -time.Minute)
	alice := &models.User{ID: "id-1", Username: "alice1"}
	authn := NewBearerAuthenticator(m, newFakeResolver(alice))

	token, err := m.Issue(alice)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = authn.Authenticate(context.Background(), bearerRequest(token))
	if !errors.Is(err, ErrExpiredCredentials) {
		t.Errorf("error = %v, want ErrExpiredCredentials", err)
	}
}

func TestBearerAuthenticateStoreFailure(t *testing.T) {
	m := newTestTokenManager(t, time.Hour)
	alice := &models.User{ID: "id-1", Username: "alice1"}
	authn := NewBearerAuthenticator(m, &fakeResolver{err: errors.New("disk on fire")})

	token, err := m.Issue(alice)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = authn.Authenticate(context.Background(), bearerRequest(token))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}
