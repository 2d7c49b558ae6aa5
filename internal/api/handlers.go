// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package api wires the HTTP surface of the catalog service: routing,
// request decoding, response shaping and the handler implementations.
package api

import (
	"github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/internal/store"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	store    *store.Store
	verifier *auth.CredentialVerifier
	tokens   *auth.TokenManager
	hasher   *auth.PasswordHasher
}

// NewHandler creates the handler set backed by the given collaborators.
func NewHandler(st *store.Store, verifier *auth.CredentialVerifier, tokens *auth.TokenManager, hasher *auth.PasswordHasher) *Handler {
	return &Handler{
		store:    st,
		verifier: verifier,
		tokens:   tokens,
		hasher:   hasher,
	}
}
