// Package model defines the data structures shared across the application.
package model

import "time"

// User represents a registered storefront account.
//
// PasswordHash is never serialized; public responses go through Profile.
// Refresh tokens live in their own table (see repository.SessionTokenRepository)
// but conceptually belong to the user: a refresh token is honored only while it
// is present in the owner's list.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserName     string    `json:"userName"`
	ProfileImg   string    `json:"profileImg"`
	Active       bool      `json:"activo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the public view of a user account.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	UserName   string `json:"userName"`
	ProfileImg string `json:"profileImg"`
	Active     bool   `json:"activo"`
}

// PublicProfile returns the fields of u that are safe to send to clients.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:         u.ID,
		Email:      u.Email,
		UserName:   u.UserName,
		ProfileImg: u.ProfileImg,
		Active:     u.Active,
	}
}
