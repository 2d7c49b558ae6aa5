// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/cinebase/cinebase/internal/models"
)

func TestUpdateUserPartial(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.registerUser(t, "alice1", "open sesame please")

	email := "fresh@example.com"
	rec := ts.do(t, http.MethodPut, "/users/alice1", token, models.UpdateUserRequest{Email: &email})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var updated models.User
	decodeBody(t, rec, &updated)
	if updated.Email != email {
		t.Errorf("Email = %q, want %q", updated.Email, email)
	}
	if updated.Username != "alice1" {
		t.Errorf("Username changed unexpectedly to %q", updated.Username)
	}
}

func TestUpdateUserPasswordRehashed(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.registerUser(t, "alice1", "open sesame please")

	newPassword := "a brand new secret"
	rec := ts.do(t, http.MethodPut, "/users/alice1", token, models.UpdateUserRequest{Password: &newPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Old password no longer logs in, new one does.
	rec = ts.do(t, http.MethodPost, "/login", "", models.LoginRequest{Username: "alice1", Password: "open sesame please"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("old password login status = %d, want 400", rec.Code)
	}
	rec = ts.do(t, http.MethodPost, "/login", "", models.LoginRequest{Username: "alice1", Password: newPassword})
	if rec.Code != http.StatusOK {
		t.Errorf("new password login status = %d, want 200", rec.Code)
	}
}

func TestUpdateUserEmptyBody(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.registerUser(t, "alice1", "open sesame please")

	rec := ts.do(t, http.MethodPut, "/users/alice1", token, models.UpdateUserRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateUserForbiddenForOthers(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.registerUser(t, "alice1", "open sesame please")
	ts.registerUser(t, "bob22", "another password")

	email := "stolen@example.com"
	rec := ts.do(t, http.MethodPut, "/users/bob22", aliceToken, models.UpdateUserRequest{Email: &email})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestListUsersRequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.registerUser(t, "alice1", "open sesame please")

	rec := ts.do(t, http.MethodGet, "/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/users", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated status = %d, want 200", rec.Code)
	}
	var users []models.User
	decodeBody(t, rec, &users)
	if len(users) != 1 {
		t.Errorf("user count = %d, want 1", len(users))
	}
}

func TestFavoriteLifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.registerUser(t, "alice1", "open sesame please")

	if err := ts.store.SeedCatalog(context.Background()); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}
	movie, err := ts.store.MovieByTitle(context.Background(), "Interstellar")
	if err != nil {
		t.Fatalf("MovieByTitle() error = %v", err)
	}

	// Add.
	rec := ts.do(t, http.MethodPost, "/users/alice1/movies/"+movie.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated models.User
	decodeBody(t, rec, &updated)
	if !updated.HasFavorite(movie.ID) {
		t.Error("favorite missing after add")
	}

	// Adding again keeps set semantics.
	rec = ts.do(t, http.MethodPost, "/users/alice1/movies/"+movie.ID, token, nil)
	decodeBody(t, rec, &updated)
	if len(updated.FavoriteMovies) != 1 {
		t.Errorf("favorites = %v, want one entry", updated.FavoriteMovies)
	}

	// Remove.
	rec = ts.do(t, http.MethodDelete, "/users/alice1/movies/"+movie.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d, body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &updated)
	if updated.HasFavorite(movie.ID) {
		t.Error("favorite still present after remove")
	}
}

func TestAddFavoriteUnknownMovie(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.registerUser(t, "alice1", "open sesame please")

	rec := ts.do(t, http.MethodPost, "/users/alice1/movies/no-such-movie", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body = %s", rec.Code, rec.Body.String())
	}
}

func TestFavoriteForbiddenForOthers(t *testing.T) {
	ts := newTestServer(t)
	_, aliceToken := ts.registerUser(t, "alice1", "open sesame please")
	ts.registerUser(t, "bob22", "another password")

	rec := ts.do(t, http.MethodPost, "/users/bob22/movies/whatever", aliceToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
