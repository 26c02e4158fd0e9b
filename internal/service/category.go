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

// CategoryService handles genre categories. Titles are unique (by exact
// trimmed match, pre-checked the same non-atomic way as user emails).
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/category: listing: %w", err)
	}
	return categories, nil
}

// Search returns categories whose title contains the query. Unlike the game
// search, no match at all is a not-found error.
func (s *CategoryService) Search(ctx context.Context, title string) ([]model.Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperror.ValidationFailed("title", "category title is required")
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/category: searching: %w", err)
	}

	needle := strings.ToLower(title)
	matches := []model.Category{}
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: fmt.Sprintf("no categories matching %q", title),
		}
	}
	return matches, nil
}

// Create validates and stores a new category. Duplicate titles are a conflict.
func (s *CategoryService) Create(ctx context.Context, title, description string, active *bool) (*model.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "category title is required")
	}

	_, err := s.repo.GetCategoryByTitle(ctx, title)
	switch {
	case err == nil:
		return nil, apperror.Conflict(fmt.Sprintf("a category with title %q already exists", title))
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/category: checking title: %w", err)
	}

	category := &model.Category{
		Title:       title,
		Description: strings.TrimSpace(description),
		Active:      true,
	}
	if active != nil {
		category.Active = *active
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("service/category: creating: %w", err)
	}

	s.logger.Info("category created", slog.String("categoryID", category.ID), slog.String("title", category.Title))
	return category, nil
}

// Update applies a partial update and returns the updated category.
func (s *CategoryService) Update(ctx context.Context, id string, upd repository.CatalogUpdate) (*model.Category, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, apperror.ValidationFailed("title", "category title must not be empty")
	}

	category, err := s.repo.UpdateCategory(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("service/category: updating %s: %w", id, err)
	}
	return category, nil
}

// Delete removes a category and returns the removed record, so the handler
// can name it in the confirmation message.
func (s *CategoryService) Delete(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/category: getting %s: %w", id, err)
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return nil, fmt.Errorf("service/category: deleting %s: %w", id, err)
	}

	s.logger.Info("category deleted", slog.String("categoryID", id), slog.String("title", category.Title))
	return category, nil
}
