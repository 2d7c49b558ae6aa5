// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package store

import (
	"context"
	"errors"

	"github.com/cinebase/cinebase/internal/logging"
	"github.com/cinebase/cinebase/internal/models"
)

// SeedCatalog inserts a small demo catalog so a fresh install has something
// to browse. Movies already present (by title) are left untouched.
func (s *Store) SeedCatalog(ctx context.Context) error {
	seeded := 0
	for _, movie := range demoCatalog() {
		err := s.InsertMovie(ctx, movie)
		if errors.Is(err, ErrTitleTaken) {
			continue
		}
		if err != nil {
			return err
		}
		seeded++
	}
	if seeded > 0 {
		logging.Info().Int("count", seeded).Msg("Seeded demo movie catalog")
	}
	return nil
}

func demoCatalog() []*models.Movie {
	return []*models.Movie{
		{
			Title:       "Interstellar",
			Description: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
			Genre:       models.Genre{Name: "Science Fiction", Description: "Speculative stories built on scientific or technological premises."},
			Director:    models.Director{Name: "Christopher Nolan", BirthYear: "1970"},
			Actors:      []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
			Featured:    true,
		},
		{
			Title:       "E.T. the Extra-Terrestrial",
			Description: "A troubled child summons the courage to help a friendly alien escape Earth and return home.",
			Genre:       models.Genre{Name: "Science Fiction", Description: "Speculative stories built on scientific or technological premises."},
			Director:    models.Director{Name: "Steven Spielberg", BirthYear: "1946"},
			Actors:      []string{"Henry Thomas", "Drew Barrymore", "Dee Wallace"},
			Featured:    false,
		},
		{
			Title:       "Kill Bill: Vol. 1",
			Description: "After awakening from a four-year coma, a former assassin wreaks vengeance on the team that betrayed her.",
			Genre:       models.Genre{Name: "Action", Description: "High-energy films built around combat, chases, and physical feats."},
			Director:    models.Director{Name: "Quentin Tarantino", BirthYear: "1963"},
			Actors:      []string{"Uma Thurman", "Lucy Liu", "David Carradine"},
			Featured:    false,
		},
	}
}
