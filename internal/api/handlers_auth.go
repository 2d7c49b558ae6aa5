// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/internal/logging"
	"github.com/cinebase/cinebase/internal/models"
	"github.com/cinebase/cinebase/internal/store"
	"github.com/cinebase/cinebase/internal/validation"
)

// loginFailedMessage is deliberately identical for unknown usernames and
// wrong passwords.
const loginFailedMessage = "Incorrect username or password."

// Login handles POST /login. Success returns the user record and a fresh
// bearer token; any credential failure returns the same generic 400.
// Failure responses always carry the login shape, user null included,
// even when the body never parsed.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, models.LoginResponse{
			User:    nil,
			Message: "Invalid JSON body",
		})
		return
	}

	user, err := h.verifier.Verify(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondJSON(w, http.StatusBadRequest, models.LoginResponse{
			User:    nil,
			Message: loginFailedMessage,
		})
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", user.Username).Msg("User logged in")
	respondJSON(w, http.StatusOK, models.LoginResponse{User: user, Token: token})
}

// Register handles POST /users. Validation failures return 422 with field
// details; a taken username returns 409.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	digest, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: digest,
		Email:        req.Email,
		BirthDate:    req.BirthDate,
	}
	err = h.store.InsertUser(r.Context(), user)
	if errors.Is(err, store.ErrUsernameTaken) {
		respondMessage(w, http.StatusConflict, req.Username+" already exists")
		return
	}
	if err != nil {
		respondInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", user.Username).Msg("User registered")
	respondJSON(w, http.StatusCreated, user)
}
