package model

import "time"

// Game is a catalog entry for a purchasable title.
//
// Discount is a fraction of the price (0.10 = 10% off), not an absolute amount.
type Game struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Developer   string    `json:"developer"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	CoverImg    string    `json:"coverImg"`
	Discount    float64   `json:"discount"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
