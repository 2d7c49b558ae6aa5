// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/store"
)

// ListMovies handles GET /movies with optional ?genre= and ?actor=
// filters. Filtering on a genre or actor nobody in the catalog carries is
// a 404 rather than an empty list.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	filter := models.MovieFilter{
		Genre: r.URL.Query().Get("genre"),
		Actor: r.URL.Query().Get("actor"),
	}

	if filter.Genre != "" {
		known, err := h.store.HasGenre(r.Context(), filter.Genre)
		if err != nil {
			respondInternalError(w, r, err)
			return
		}
		if !known {
			respondMessage(w, http.StatusNotFound, "Genre not found")
			return
		}
	}
	if filter.Actor != "" {
		known, err := h.store.HasActor(r.Context(), filter.Actor)
		if err != nil {
			respondInternalError(w, r, err)
			return
		}
		if !known {
			respondMessage(w, http.StatusNotFound, "Actor not found")
			return
		}
	}

	movies, err := h.store.ListMovies(r.Context(), filter)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movies)
}

// GetMovie handles GET /movies/{title}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	movie, err := h.store.MovieByTitle(r.Context(), title)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Movie not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, movie)
}

// GetGenre handles GET /genres/{name}.
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	genre, err := h.store.GenreByName(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Genre not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, genre)
}

// GetDirector handles GET /directors/{name}.
func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	director, err := h.store.DirectorByName(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "Director not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, director)
}
