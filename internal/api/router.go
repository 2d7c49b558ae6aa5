// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/internal/config"
	"github.com/cinebase/cinebase/internal/middleware"
)

// Router assembles the HTTP surface from handlers and middleware.
type Router struct {
	handler *Handler
	bearer  *auth.BearerAuthenticator
	cfg     *config.SecurityConfig
}

// NewRouter creates a router over the given handler set.
func NewRouter(handler *Handler, bearer *auth.BearerAuthenticator, cfg *config.SecurityConfig) *Router {
	return &Router{handler: handler, bearer: bearer, cfg: cfg}
}

// Setup builds the route tree.
//
// Public: POST /login, POST /users, GET /healthz, GET /metrics.
// Everything else requires a bearer token; the /users/{username} subtree
// additionally requires the token's owner to match the path parameter.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.PrometheusMetrics)

	r.Get("/healthz", rt.handler.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Login gets the strictest rate limit, keyed by client IP.
	r.With(httprate.LimitByIP(rt.cfg.LoginRateLimit, rt.cfg.LoginRateWindow)).
		Post("/login", rt.handler.Login)

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.APIRateLimit, time.Minute))

		r.Post("/users", rt.handler.Register)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(rt.bearer))

			r.Get("/movies", rt.handler.ListMovies)
			r.Get("/movies/{title}", rt.handler.GetMovie)
			r.Get("/genres/{name}", rt.handler.GetGenre)
			r.Get("/directors/{name}", rt.handler.GetDirector)
			r.Get("/users", rt.handler.ListUsers)

			r.Route("/users/{username}", func(r chi.Router) {
				r.Use(auth.RequireOwner)

				r.Get("/", rt.handler.GetUser)
				r.Put("/", rt.handler.UpdateUser)
				r.Delete("/", rt.handler.DeleteUser)
				r.Post("/movies/{movieID}", rt.handler.AddFavorite)
				r.Delete("/movies/{movieID}", rt.handler.RemoveFavorite)
			})
		})
	})

	return r
}
