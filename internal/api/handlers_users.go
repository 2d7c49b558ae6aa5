// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinebase/cinebase/internal/logging"
	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/store"
	"github.com/cinebase/cinebase/internal/validation"
)

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{username}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.store.UserByUsername(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /users/{username}. The update is partial: only
// the fields present in the body change, and a password change is
// re-hashed before it is stored.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req models.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Empty() {
		respondMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	var digest string
	if req.Password != nil {
		var err error
		digest, err = h.hasher.Hash(*req.Password)
		if err != nil {
			respondInternalError(w, r, err)
			return
		}
	}

	updated, err := h.store.UpdateUser(r.Context(), username, func(user *models.User) error {
		if req.Username != nil {
			user.Username = *req.Username
		}
		if req.Password != nil {
			user.PasswordHash = digest
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.BirthDate != nil {
			user.BirthDate = req.BirthDate
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, store.ErrUsernameTaken):
		respondMessage(w, http.StatusConflict, *req.Username+" already exists")
		return
	case err != nil:
		respondInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", updated.Username).Msg("User updated")
	respondJSON(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/{username}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	_, err := h.store.DeleteUser(r.Context(), username)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", username).Msg("User deleted")
	respondMessage(w, http.StatusOK, username+" was deleted.")
}

// AddFavorite handles POST /users/{username}/movies/{movieID}. The movie
// must exist in the catalog; adding one already present is a no-op.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	if _, err := h.store.MovieByID(r.Context(), movieID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Movie not found")
			return
		}
		respondInternalError(w, r, err)
		return
	}

	updated, err := h.store.AddFavorite(r.Context(), username, movieID)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// RemoveFavorite handles DELETE /users/{username}/movies/{movieID}.
// Removing a movie that is not in the set is a no-op.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	updated, err := h.store.RemoveFavorite(r.Context(), username, movieID)
	if errors.Is(err, store.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
