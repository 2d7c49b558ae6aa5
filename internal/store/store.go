// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package store persists users and movies as JSON documents in BadgerDB.
//
// Key layout:
//
//	user:<id>          -> User document
//	username:<name>    -> user id (unique index)
//	movie:<id>         -> Movie document
//	movietitle:<title> -> movie id (unique index, lowercased)
//
// Every read-modify-write runs inside a single Badger transaction, so
// concurrent favorite-list updates cannot lose writes: conflicting
// transactions fail with ErrConflict and are retried.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/cinebase/cinebase/internal/config"
	"github.com/cinebase/cinebase/internal/logging"
)

// Key prefixes for BadgerDB storage.
const (
	userKeyPrefix       = "user:"
	usernameKeyPrefix   = "username:"
	movieKeyPrefix      = "movie:"
	movieTitleKeyPrefix = "movietitle:"
)

// Transactions that fail with ErrConflict are retried with a growing
// delay; the cap keeps a pathological hot key from spinning forever.
const (
	txnRetries    = 10
	txnRetryDelay = 2 * time.Millisecond
)

var (
	// ErrNotFound indicates the requested document does not exist. This is
	// a normal outcome, distinct from infrastructure failure.
	ErrNotFound = errors.New("document not found")

	// ErrUsernameTaken indicates a unique username constraint violation.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrTitleTaken indicates a unique movie title constraint violation.
	ErrTitleTaken = errors.New("movie title already exists")
)

// Store is the document store backing the catalog service.
type Store struct {
	db *badger.DB
}

// Open creates or opens the store at the configured path. With
// cfg.InMemory set, the store lives entirely in memory (used by tests).
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunGC runs one round of value-log garbage collection. Returns
// badger.ErrNoRewrite when there was nothing to collect.
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// update runs fn in a read-write transaction, retrying on commit
// conflicts with linear backoff.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < txnRetries; i++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		time.Sleep(time.Duration(i+1) * txnRetryDelay)
	}
	return err
}

// getJSON reads the value at key into out, translating key-not-found into
// ErrNotFound.
func getJSON(txn *badger.Txn, key []byte, out interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// getString reads a small index value (a document id) at key.
func getString(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	var out string
	err = item.Value(func(val []byte) error {
		out = string(val)
		return nil
	})
	return out, err
}

func userKey(id string) []byte       { return []byte(userKeyPrefix + id) }
func usernameKey(name string) []byte { return []byte(usernameKeyPrefix + name) }
func movieKey(id string) []byte      { return []byte(movieKeyPrefix + id) }

func movieTitleKey(title string) []byte {
	return []byte(movieTitleKeyPrefix + strings.ToLower(title))
}

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf(strings.TrimSpace(format), args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf(strings.TrimSpace(format), args...)
}
