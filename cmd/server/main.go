// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package main is the entry point for the Cinebase server.
//
// Cinebase is a movie catalog REST API: clients register an account, log
// in for a bearer token, browse the catalog by title, genre, director or
// actor, and maintain a personal list of favorite movies.
//
// Startup order:
//
//  1. Configuration (Koanf v2: defaults, optional YAML file, CINEBASE_* env)
//  2. Logging (zerolog)
//  3. Document store (BadgerDB) plus optional demo catalog seeding
//  4. Auth wiring (bcrypt hasher, JWT manager, credential/bearer verifiers)
//  5. HTTP router (chi)
//  6. Supervisor tree (suture) running the server and store GC
//
// The process shuts down gracefully on SIGINT and SIGTERM: the listener
// stops accepting connections, in-flight requests get the configured
// shutdown timeout, then the store is closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinebase/cinebase/internal/api"
	"github.com/cinebase/cinebase/internal/auth"
	"github.com/cinebase/cinebase/internal/config"
	"github.com/cinebase/cinebase/internal/logging"
	"github.com/cinebase/cinebase/internal/store"
	"github.com/cinebase/cinebase/internal/supervisor"
	"github.com/cinebase/cinebase/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("db_path", cfg.Database.Path).
		Bool("db_in_memory", cfg.Database.InMemory).
		Msg("Starting Cinebase")

	st, err := store.Open(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document store")
		}
	}()

	if cfg.Database.SeedCatalog {
		if err := st.SeedCatalog(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo catalog")
		}
	}

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}
	hasher := auth.NewPasswordHasher(cfg.Security.BcryptCost)
	verifier := auth.NewCredentialVerifier(st, hasher)
	bearer := auth.NewBearerAuthenticator(tokens, st)

	handler := api.NewHandler(st, verifier, tokens, hasher)
	router := api.NewRouter(handler, bearer, &cfg.Security).Setup()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewStoreGCService(st, cfg.Database.GCInterval))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Serving")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree exited with error")
	}
	logging.Info().Msg("Shutdown complete")
}
