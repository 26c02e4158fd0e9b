package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

// UserService serves the profile operations. The caller's identity comes from
// the authorization middleware; these methods never accept a user id from the
// request body.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetProfile returns the public view of the account.
func (s *UserService) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/user: fetching user %s: %w", id, err)
	}
	profile := user.PublicProfile()
	return &profile, nil
}

// UpdateProfile overwrites userName and/or profileImg. Empty values are
// skipped; providing neither is a validation error.
func (s *UserService) UpdateProfile(ctx context.Context, id, userName, profileImg string) error {
	if userName == "" && profileImg == "" {
		return apperror.ValidationFailed("", "nothing to update: provide userName or profileImg")
	}

	if err := s.users.UpdateUserProfile(ctx, id, userName, profileImg); err != nil {
		return fmt.Errorf("service/user: updating profile %s: %w", id, err)
	}

	s.logger.Info("profile updated", slog.String("userID", id))
	return nil
}
