package model

import "time"

// Platform is a system a game can run on ("PC", "PS5", ...).
//
// Platforms are never hard-deleted; removal flips Active to false so existing
// games keep a valid reference.
type Platform struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
