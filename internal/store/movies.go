// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/cinebase/cinebase/internal/models"
)

// InsertMovie persists a new catalog entry. The movie's ID is assigned
// here. Titles are unique, compared case-insensitively.
func (s *Store) InsertMovie(ctx context.Context, movie *models.Movie) error {
	movie.ID = uuid.New().String()
	movie.CreatedAt = time.Now().UTC()
	if movie.Actors == nil {
		movie.Actors = []string{}
	}

	return s.update(func(txn *badger.Txn) error {
		if _, err := getString(txn, movieTitleKey(movie.Title)); err == nil {
			return ErrTitleTaken
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		data, err := json.Marshal(movie)
		if err != nil {
			return fmt.Errorf("marshal movie: %w", err)
		}
		if err := txn.Set(movieKey(movie.ID), data); err != nil {
			return fmt.Errorf("set movie: %w", err)
		}
		if err := txn.Set(movieTitleKey(movie.Title), []byte(movie.ID)); err != nil {
			return fmt.Errorf("set title index: %w", err)
		}
		return nil
	})
}

// MovieByTitle resolves a movie through the title index (case-insensitive).
func (s *Store) MovieByTitle(ctx context.Context, title string) (*models.Movie, error) {
	var movie models.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := getString(txn, movieTitleKey(title))
		if err != nil {
			return err
		}
		return getJSON(txn, movieKey(id), &movie)
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// MovieByID fetches a movie by its document key.
func (s *Store) MovieByID(ctx context.Context, id string) (*models.Movie, error) {
	var movie models.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, movieKey(id), &movie)
	})
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// ListMovies returns catalog entries matching the filter. A zero filter
// matches everything.
func (s *Store) ListMovies(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	movies := []*models.Movie{}
	err := s.db.View(func(txn *badger.Txn) error {
		return s.forEachMovie(txn, func(movie *models.Movie) error {
			if matchesFilter(movie, filter) {
				movies = append(movies, movie)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// GenreByName returns the genre details from the first movie carrying the
// named genre. Matches case-insensitively.
func (s *Store) GenreByName(ctx context.Context, name string) (*models.Genre, error) {
	var found *models.Genre
	err := s.db.View(func(txn *badger.Txn) error {
		return s.forEachMovie(txn, func(movie *models.Movie) error {
			if found == nil && strings.EqualFold(movie.Genre.Name, name) {
				genre := movie.Genre
				found = &genre
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// DirectorByName returns the director details from the first movie directed
// by the named director. Matches case-insensitively.
func (s *Store) DirectorByName(ctx context.Context, name string) (*models.Director, error) {
	var found *models.Director
	err := s.db.View(func(txn *badger.Txn) error {
		return s.forEachMovie(txn, func(movie *models.Movie) error {
			if found == nil && strings.EqualFold(movie.Director.Name, name) {
				director := movie.Director
				found = &director
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// HasGenre reports whether any movie carries the named genre.
func (s *Store) HasGenre(ctx context.Context, name string) (bool, error) {
	_, err := s.GenreByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasActor reports whether any movie lists the named actor.
func (s *Store) HasActor(ctx context.Context, name string) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		return s.forEachMovie(txn, func(movie *models.Movie) error {
			if !found && hasActor(movie, name) {
				found = true
			}
			return nil
		})
	})
	return found, err
}

// forEachMovie iterates every movie document within txn.
func (s *Store) forEachMovie(txn *badger.Txn, fn func(*models.Movie) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(movieKeyPrefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		var movie models.Movie
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &movie)
		})
		if err != nil {
			return err
		}
		if err := fn(&movie); err != nil {
			return err
		}
	}
	return nil
}

func matchesFilter(movie *models.Movie, filter models.MovieFilter) bool {
	if filter.Genre != "" && !strings.EqualFold(movie.Genre.Name, filter.Genre) {
		return false
	}
	if filter.Actor != "" && !hasActor(movie, filter.Actor) {
		return false
	}
	return true
}

func hasActor(movie *models.Movie, name string) bool {
	for _, actor := range movie.Actors {
		if strings.EqualFold(actor, name) {
			return true
		}
	}
	return false
}
