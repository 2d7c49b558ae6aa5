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

func newSeededServer(t *testing.T) (*testServer, string) {
	t.Helper()
	ts := newTestServer(t)
	if err := ts.store.SeedCatalog(context.Background()); err != nil {
		t.Fatalf("SeedCatalog() error = %v", err)
	}
	_, token := ts.registerUser(t, "alice1", "open sesame please")
	return ts, token
}

func TestListMoviesRequiresAuth(t *testing.T) {
	ts, _ := newSeededServer(t)

	rec := ts.do(t, http.MethodGet, "/movies", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestListMovies(t *testing.T) {
	ts, token := newSeededServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
	}{
		{"all", "/movies", http.StatusOK, 3},
		{"genre filter", "/movies?genre=Science+Fiction", http.StatusOK, 2},
		{"actor filter", "/movies?actor=Uma+Thurman", http.StatusOK, 1},
		{"unknown genre", "/movies?genre=Horror", http.StatusNotFound, 0},
		{"unknown actor", "/movies?actor=Nobody", http.StatusNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, tt.target, token, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var movies []models.Movie
			decodeBody(t, rec, &movies)
			if len(movies) != tt.wantCount {
				t.Errorf("count = %d, want %d", len(movies), tt.wantCount)
			}
		})
	}
}

func TestGetMovieByTitle(t *testing.T) {
	ts, token := newSeededServer(t)

	rec := ts.do(t, http.MethodGet, "/movies/Interstellar", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var movie models.Movie
	decodeBody(t, rec, &movie)
	if movie.Director.Name != "Christopher Nolan" {
		t.Errorf("Director = %q", movie.Director.Name)
	}

	rec = ts.do(t, http.MethodGet, "/movies/Unlisted+Film", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing movie status = %d, want 404", rec.Code)
	}
}

func TestGetGenre(t *testing.T) {
	ts, token := newSeededServer(t)

	rec := ts.do(t, http.MethodGet, "/genres/Science%20Fiction", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var genre models.Genre
	decodeBody(t, rec, &genre)
	if genre.Name != "Science Fiction" {
		t.Errorf("Name = %q", genre.Name)
	}

	rec = ts.do(t, http.MethodGet, "/genres/Horror", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing genre status = %d, want 404", rec.Code)
	}
}

func TestGetDirector(t *testing.T) {
	ts, token := newSeededServer(t)

	rec := ts.do(t, http.MethodGet, "/directors/Quentin%20Tarantino", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var director models.Director
	decodeBody(t, rec, &director)
	if director.BirthYear != "1963" {
		t.Errorf("BirthYear = %q", director.BirthYear)
	}

	rec = ts.do(t, http.MethodGet, "/directors/Nobody+Notable", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing director status = %d, want 404", rec.Code)
	}
}
