// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package middleware holds HTTP middleware shared across the router:
// request ID propagation and Prometheus instrumentation. Authentication
// middleware lives in the auth package next to the authenticators.
package middleware

import (
	"net/http"

	"github.com/cinebase/cinebase/internal/logging"
)

// requestIDHeader is echoed back to clients and accepted from trusted
// callers for request correlation.
const requestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, reusing the caller's
// X-Request-ID when present. The ID travels in the response header and
// in the logging context, so every log line for a request carries it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
