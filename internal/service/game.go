package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

// GameService handles the game catalog.
type GameService struct {
	repo   repository.GameRepository
	logger *slog.Logger
}

func NewGameService(repo repository.GameRepository, logger *slog.Logger) *GameService {
	return &GameService{repo: repo, logger: logger}
}

// GameInput carries the fields for creating a game. Active is a pointer so a
// caller can distinguish "not provided" (defaults to true) from false.
type GameInput struct {
	Title       string
	Description string
	Developer   string
	Category    string
	Price       float64
	CoverImg    string
	Discount    float64
	Active      *bool
}

// List returns the full catalog.
func (s *GameService) List(ctx context.Context) ([]model.Game, error) {
	games, err := s.repo.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/game: listing: %w", err)
	}
	return games, nil
}

// GetByID returns one game or ErrNotFound.
func (s *GameService) GetByID(ctx context.Context, id string) (*model.Game, error) {
	game, err := s.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/game: getting %s: %w", id, err)
	}
	return game, nil
}

// Search returns games whose title contains the query, case-insensitively.
// The match is a linear scan over the catalog, like the original store's
// client-side filter; an empty result is not an error.
func (s *GameService) Search(ctx context.Context, title string) ([]model.Game, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.ValidationFailed("title", "title query parameter is required")
	}

	games, err := s.repo.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/game: searching: %w", err)
	}

	needle := strings.ToLower(title)
	matches := []model.Game{}
	for _, g := range games {
		if strings.Contains(strings.ToLower(g.Title), needle) {
			matches = append(matches, g)
		}
	}
	return matches, nil
}

// Create validates and stores a new game.
func (s *GameService) Create(ctx context.Context, in GameInput) (*model.Game, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "game title is required")
	}
	if in.Price < 0 {
		return nil, apperror.ValidationFailed("price", "price must not be negative")
	}
	if in.Discount < 0 || in.Discount > 1 {
		return nil, apperror.ValidationFailed("discount", "discount must be a fraction between 0 and 1")
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	game := &model.Game{
		Title:       title,
		Description: in.Description,
		Developer:   in.Developer,
		Category:    in.Category,
		Price:       in.Price,
		CoverImg:    in.CoverImg,
		Discount:    in.Discount,
		Active:      active,
	}
	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("service/game: creating: %w", err)
	}

	s.logger.Info("game created", slog.String("gameID", game.ID), slog.String("title", game.Title))
	return game, nil
}

// Update applies a partial update and returns the updated game.
func (s *GameService) Update(ctx context.Context, id string, upd repository.GameUpdate) (*model.Game, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, apperror.ValidationFailed("title", "game title must not be empty")
	}
	if upd.Price != nil && *upd.Price < 0 {
		return nil, apperror.ValidationFailed("price", "price must not be negative")
	}
	if upd.Discount != nil && (*upd.Discount < 0 || *upd.Discount > 1) {
		return nil, apperror.ValidationFailed("discount", "discount must be a fraction between 0 and 1")
	}

	game, err := s.repo.UpdateGame(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("service/game: updating %s: %w", id, err)
	}
	return game, nil
}

// Delete removes a game permanently.
func (s *GameService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteGame(ctx, id); err != nil {
		return fmt.Errorf("service/game: deleting %s: %w", id, err)
	}
	s.logger.Info("game deleted", slog.String("gameID", id))
	return nil
}
