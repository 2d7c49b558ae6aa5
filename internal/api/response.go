// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/cinebase/cinebase/internal/logging"
	"github.com/cinebase/cinebase/internal/validation"
)

// respondJSON writes v as a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondMessage writes a plain {"message": ...} body.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondValidationError writes a 422 carrying the per-field failures.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "Validation failed",
		"errors":  verr.Fields(),
	})
}

// respondInternalError logs the cause and answers with an opaque 500.
// Store and infrastructure detail never reaches the client.
func respondInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")
	respondMessage(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON decodes the request body into v, rejecting unknown shapes
// with a uniform 400. Returns false when decoding failed and a response
// was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
