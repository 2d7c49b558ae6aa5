// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cinebase/cinebase/internal/models"
)

// storedUser is the on-disk form of a user. models.User keeps the password
// digest out of JSON entirely (`json:"-"`), which is right for HTTP
// responses but would also drop it from the stored document; the wrapper
// reintroduces it for persistence only.
type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func marshalUser(user *models.User) ([]byte, error) {
	return json.Marshal(storedUser{User: *user, PasswordHash: user.PasswordHash})
}

func unmarshalUser(data []byte, user *models.User) error {
	var su storedUser
	if err := json.Unmarshal(data, &su); err != nil {
		return err
	}
	su.User.PasswordHash = su.PasswordHash
	*user = su.User
	return nil
}

// getUser reads the user document stored under id.
func getUser(txn *badger.Txn, id string) (*models.User, error) {
	item, err := txn.Get(userKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	var user models.User
	err = item.Value(func(val []byte) error {
		return unmarshalUser(val, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertUser persists a new user. The user's ID is assigned here.
// Returns ErrUsernameTaken when the username index already has an entry.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New().String()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}

	return s.update(func(txn *badger.Txn) error {
		if _, err := getString(txn, usernameKey(user.Username)); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
		return writeUser(txn, user)
	})
}

// UserByUsername resolves a user through the username index.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := getString(txn, usernameKey(username))
		if err != nil {
			return err
		}
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UserByID fetches a user by its document key.
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user *models.User
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every registered user.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var user models.User
			err := it.Item().Value(func(val []byte) error {
				return unmarshalUser(val, &user)
			})
			if err != nil {
				return err
			}
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies fn to the stored user inside one transaction and
// persists the result. fn may change the username; the unique index is
// moved accordingly and ErrUsernameTaken is returned on collision.
func (s *Store) UpdateUser(ctx context.Context, username string, fn func(*models.User) error) (*models.User, error) {
	var updated *models.User
	err := s.update(func(txn *badger.Txn) error {
		id, err := getString(txn, usernameKey(username))
		if err != nil {
			return err
		}
		user, err := getUser(txn, id)
		if err != nil {
			return err
		}

		oldUsername := user.Username
		if err := fn(user); err != nil {
			return err
		}
		user.ID = id // the document key never changes
		user.UpdatedAt = time.Now().UTC()

		if user.Username != oldUsername {
			if _, err := getString(txn, usernameKey(user.Username)); err == nil {
				return ErrUsernameTaken
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
			if err := txn.Delete(usernameKey(oldUsername)); err != nil {
				return fmt.Errorf("delete username index: %w", err)
			}
		}

		if err := writeUser(txn, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user and its username index entry, returning the
// deleted document.
func (s *Store) DeleteUser(ctx context.Context, username string) (*models.User, error) {
	var deleted *models.User
	err := s.update(func(txn *badger.Txn) error {
		id, err := getString(txn, usernameKey(username))
		if err != nil {
			return err
		}
		user, err := getUser(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(userKey(id)); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := txn.Delete(usernameKey(username)); err != nil {
			return fmt.Errorf("delete username index: %w", err)
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// AddFavorite adds movieID to the user's favorite set. Adding an already
// present movie is a no-op, mirroring a set union.
func (s *Store) AddFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return s.UpdateUser(ctx, username, func(user *models.User) error {
		if !user.HasFavorite(movieID) {
			user.FavoriteMovies = append(user.FavoriteMovies, movieID)
		}
		return nil
	})
}

// RemoveFavorite removes movieID from the user's favorite set. Removing an
// absent movie is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return s.UpdateUser(ctx, username, func(user *models.User) error {
		kept := user.FavoriteMovies[:0]
		for _, id := range user.FavoriteMovies {
			if id != movieID {
				kept = append(kept, id)
			}
		}
		user.FavoriteMovies = kept
		return nil
	})
}

// writeUser marshals and stores the user document plus its username index.
func writeUser(txn *badger.Txn, user *models.User) error {
	data, err := marshalUser(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := txn.Set(userKey(user.ID), data); err != nil {
		return fmt.Errorf("set user: %w", err)
	}
	if err := txn.Set(usernameKey(user.Username), []byte(user.ID)); err != nil {
		return fmt.Errorf("set username index: %w", err)
	}
	return nil
}
