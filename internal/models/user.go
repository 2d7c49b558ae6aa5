// Cinebase - Movie Catalog REST API
// SPDX-License-Identifier: MIT
// https://github.com/cinebase/cinebase

// Package models defines the documents stored in the catalog and the
// request payloads accepted by the API.
package models

import "time"

// User is a registered identity. The password digest never leaves the
// process: the field is excluded from JSON serialization entirely, so no
// handler can leak it by echoing the document.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Email        string     `json:"email"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`

	// FavoriteMovies holds movie IDs. Treated as a set: no duplicates,
	// order carries no meaning.
	FavoriteMovies []string `json:"favoriteMovies"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasFavorite reports whether movieID is in the user's favorites.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			return true
		}
	}
	return false
}

// RegisterRequest is the payload for POST /users.
type RegisterRequest struct {
	Username  string     `json:"username" validate:"required,min=5,alphanum"`
	Password  string     `json:"password" validate:"required,min=8"`
	Email     string     `json:"email" validate:"required,email"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// UpdateUserRequest is the payload for PUT /users/{username}. All fields are
// optional; at least one must be present.
type UpdateUserRequest struct {
	Username  *string    `json:"username,omitempty" validate:"omitempty,min=5,alphanum"`
	Password  *string    `json:"password,omitempty" validate:"omitempty,min=8"`
	Email     *string    `json:"email,omitempty" validate:"omitempty,email"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// Empty reports whether the update carries no changes at all.
func (r *UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Password == nil && r.Email == nil && r.BirthDate == nil
}

// LoginRequest is the payload for POST /login. Missing fields need no
// validation pass of their own: an empty username or password simply
// fails credential verification with the same generic response.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /login on success. On failure the
// same shape is returned with User nil and a generic Message.
type LoginResponse struct {
	User    *User  `json:"user"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}
