package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

// PlatformService handles the platform catalog. Platforms are soft-deleted:
// Deactivate flips the active flag instead of removing the row, and the
// public search hides inactive entries.
type PlatformService struct {
	repo   repository.PlatformRepository
	logger *slog.Logger
}

func NewPlatformService(repo repository.PlatformRepository, logger *slog.Logger) *PlatformService {
	return &PlatformService{repo: repo, logger: logger}
}

// List returns every platform, active or not.
func (s *PlatformService) List(ctx context.Context) ([]model.Platform, error) {
	platforms, err := s.repo.ListPlatforms(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/platform: listing: %w", err)
	}
	return platforms, nil
}

// Search returns active platforms whose title contains the query.
func (s *PlatformService) Search(ctx context.Context, title string) ([]model.Platform, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.ValidationFailed("title", "title query parameter is required")
	}

	platforms, err := s.repo.ListPlatforms(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/platform: searching: %w", err)
	}

	needle := strings.ToLower(title)
	matches := []model.Platform{}
	for _, p := range platforms {
		if !p.Active {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), needle) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// Create validates and stores a new platform. Duplicate titles are a conflict.
func (s *PlatformService) Create(ctx context.Context, title, description string, active *bool) (*model.Platform, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "platform title is required")
	}

	_, err := s.repo.GetPlatformByTitle(ctx, title)
	switch {
	case err == nil:
		return nil, apperror.Conflict(fmt.Sprintf("a platform with title %q already exists", title))
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/platform: checking title: %w", err)
	}

	platform := &model.Platform{
		Title:       title,
		Description: strings.TrimSpace(description),
		Active:      true,
	}
	if active != nil {
		platform.Active = *active
	}
	if err := s.repo.CreatePlatform(ctx, platform); err != nil {
		return nil, fmt.Errorf("service/platform: creating: %w", err)
	}

	s.logger.Info("platform created", slog.String("platformID", platform.ID), slog.String("title", platform.Title))
	return platform, nil
}

// Update applies a partial update. At least one updatable field must be set.
func (s *PlatformService) Update(ctx context.Context, id string, upd repository.CatalogUpdate) (*model.Platform, error) {
	if upd.Title == nil && upd.Description == nil && upd.Active == nil {
		return nil, apperror.ValidationFailed("", "no valid fields to update (title, description, active)")
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, apperror.ValidationFailed("title", "platform title must not be empty")
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		return nil, apperror.ValidationFailed("description", "platform description must not be empty")
	}

	platform, err := s.repo.UpdatePlatform(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("service/platform: updating %s: %w", id, err)
	}
	return platform, nil
}

// Deactivate soft-deletes a platform and returns the updated record.
func (s *PlatformService) Deactivate(ctx context.Context, id string) (*model.Platform, error) {
	inactive := false
	platform, err := s.repo.UpdatePlatform(ctx, id, repository.CatalogUpdate{Active: &inactive})
	if err != nil {
		return nil, fmt.Errorf("service/platform: deactivating %s: %w", id, err)
	}

	s.logger.Info("platform deactivated", slog.String("platformID", id))
	return platform, nil
}
