// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package config provides layered configuration for Cinebase using koanf v2.
//
// Configuration is loaded from three sources, highest priority last:
//
//  1. Built-in defaults
//  2. Config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (CINEBASE_ prefix, e.g. CINEBASE_SERVER_PORT)
//
// Security-critical values are validated after loading; the server refuses
// to start with a missing or short JWT secret.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout is how long to wait for in-flight requests on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds document store settings.
type DatabaseConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is true.
	Path string `koanf:"path"`

	// InMemory runs the store without disk persistence. Used by tests.
	InMemory bool `koanf:"in_memory"`

	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`

	// SeedCatalog inserts a small demo movie catalog into an empty store.
	SeedCatalog bool `koanf:"seed_catalog"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// JWTSecret signs and verifies bearer tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the bearer token lifetime. Default: 168h (7 days).
	TokenTTL time.Duration `koanf:"token_ttl"`

	// BcryptCost is the password hashing cost factor.
	BcryptCost int `koanf:"bcrypt_cost"`

	// CORSOrigins lists allowed CORS origins. Empty disallows cross-origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// LoginRateLimit caps login attempts per IP per LoginRateWindow.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`

	// APIRateLimit caps requests per IP per minute across the API.
	APIRateLimit int `koanf:"api_rate_limit"`
}

// LoggingConfig holds logging settings for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. These are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:        "/data/cinebase",
			InMemory:    false,
			GCInterval:  10 * time.Minute,
			SeedCatalog: false,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			TokenTTL:        7 * 24 * time.Hour,
			BcryptCost:      10,
			CORSOrigins:     nil,
			LoginRateLimit:  5,
			LoginRateWindow: 5 * time.Minute,
			APIRateLimit:    300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the loaded configuration for values that would make the
// server unsafe or unable to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	// bcrypt rejects costs outside [4, 31]; anything below 10 is too cheap
	// for stored login credentials.
	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost %d out of range [10, 31]", c.Security.BcryptCost)
	}
	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("security.token_ttl must be positive")
	}
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("database.path is required when not running in memory")
	}
	return nil
}
