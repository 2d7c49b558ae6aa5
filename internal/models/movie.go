// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

package models

import "time"

// Movie is a catalog entry.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
	Actors      []string `json:"actors"`
	ImagePath   string   `json:"imagePath,omitempty"`
	Featured    bool     `json:"featured"`

	CreatedAt time.Time `json:"createdAt"`
}

// Genre describes a movie's genre.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Director describes a movie's director.
type Director struct {
	Name      string `json:"name"`
	BirthYear string `json:"birthYear,omitempty"`
}

// MovieFilter narrows catalog listings. Zero values match everything.
type MovieFilter struct {
	Genre string
	Actor string
}
