// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import "net/http"

// Healthz handles GET /healthz. Reachability implies the process and its
// embedded store are up, so no deeper probe is needed.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
