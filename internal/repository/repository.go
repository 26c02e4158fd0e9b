// Package repository defines the storage interfaces the service layer depends
// on. The concrete implementation lives in repository/sqlite; services never
// import it directly.
package repository

import (
	"context"

	"github.com/hvaldez/gamestore/internal/model"
)

// UserRepository stores user accounts.
//
// GetUserByEmail backs the registration uniqueness pre-check and login. The
// check and the subsequent insert are not atomic; two concurrent registrations
// with the same email can both land. That gap is inherited behavior, not a bug
// to fix here.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateUserProfile overwrites only the non-empty fields.
	UpdateUserProfile(ctx context.Context, id, userName, profileImg string) error
}

// SessionTokenRepository stores each user's list of currently-valid refresh
// tokens. The list is ordered by issuance and may contain duplicates;
// RemoveSessionToken deletes every copy of the value and is a no-op when the
// value is absent.
type SessionTokenRepository interface {
	AppendSessionToken(ctx context.Context, userID, token string) error
	SessionTokenExists(ctx context.Context, userID, token string) (bool, error)
	RemoveSessionToken(ctx context.Context, userID, token string) error
	ListSessionTokens(ctx context.Context, userID string) ([]string, error)
}

// GameUpdate is a partial update; nil fields are left unchanged.
type GameUpdate struct {
	Title       *string
	Description *string
	Developer   *string
	Category    *string
	Price       *float64
	CoverImg    *string
	Discount    *float64
	Active      *bool
}

type GameRepository interface {
	CreateGame(ctx context.Context, game *model.Game) error
	GetGameByID(ctx context.Context, id string) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.Game, error)
	UpdateGame(ctx context.Context, id string, upd GameUpdate) (*model.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

// CatalogUpdate is a partial update for categories and platforms, which share
// a shape (title, description, active).
type CatalogUpdate struct {
	Title       *string
	Description *string
	Active      *bool
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	GetCategoryByTitle(ctx context.Context, title string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id string, upd CatalogUpdate) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type PlatformRepository interface {
	CreatePlatform(ctx context.Context, platform *model.Platform) error
	GetPlatformByID(ctx context.Context, id string) (*model.Platform, error)
	GetPlatformByTitle(ctx context.Context, title string) (*model.Platform, error)
	ListPlatforms(ctx context.Context) ([]model.Platform, error)
	UpdatePlatform(ctx context.Context, id string, upd CatalogUpdate) (*model.Platform, error)
}
