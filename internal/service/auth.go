// Package service contains the business logic layer. Services validate input,
// enforce the rules, and orchestrate repositories; they know nothing about
// HTTP. Handlers translate their domain errors to status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/auth"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

// AuthService orchestrates registration, login, refresh and logout.
//
// The invariant it owns: a refresh token is honored only while it is both
// cryptographically valid and present in the issuing user's stored session
// list. Revocation is purely list membership — there is no blacklist, and
// access tokens are never revoked early.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionTokenRepository
	codec      *auth.TokenCodec
	passwords  *auth.PasswordHasher
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionTokenRepository,
	codec *auth.TokenCodec,
	passwords *auth.PasswordHasher,
	accessTTL, refreshTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		codec:      codec,
		passwords:  passwords,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new account.
//
// The email pre-check and the insert are two separate store calls; concurrent
// registrations with the same email can slip through the gap. Duplicates found
// by the pre-check map to 400, matching the original API.
func (s *AuthService) Register(ctx context.Context, email, password, userName, profileImg string) (*model.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.ValidationFailed("email", "email already in use")
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/auth: checking email %s: %w", email, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	if userName == "" {
		userName, _, _ = strings.Cut(email, "@")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		UserName:     userName,
		ProfileImg:   profileImg,
		Active:       true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("userName", user.UserName),
	)

	profile := user.PublicProfile()
	return &profile, nil
}

// Login verifies credentials and issues an access/refresh token pair. The new
// refresh token is appended to the user's session list; concurrent logins each
// append independently (no dedup, no session cap).
//
// Unknown email and wrong password return the same error so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up %s: %w", email, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	identity := auth.Identity{ID: user.ID, Email: user.Email, UserName: user.UserName}

	access, err := s.codec.Issue(identity, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing access token: %w", err)
	}
	refresh, err := s.codec.Issue(identity, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing refresh token: %w", err)
	}

	if err := s.sessions.AppendSessionToken(ctx, user.ID, refresh); err != nil {
		return nil, fmt.Errorf("service/auth: storing refresh token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token from a valid, unrevoked refresh token.
// The refresh token is NOT rotated — it keeps working until logout removes it.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperror.ValidationFailed("refreshToken", "refreshToken is required")
	}

	identity, err := s.codec.Verify(refreshToken)
	if err != nil {
		// Expired and tampered tokens are distinguishable here but map to
		// the same client-facing failure.
		return "", apperror.Forbidden("refresh token expired or invalid")
	}

	ok, err := s.sessions.SessionTokenExists(ctx, identity.ID, refreshToken)
	if err != nil {
		return "", fmt.Errorf("service/auth: checking refresh token: %w", err)
	}
	if !ok {
		return "", apperror.Forbidden("refresh token revoked")
	}

	access, err := s.codec.Issue(identity, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing access token: %w", err)
	}
	return access, nil
}

// Logout removes the refresh token from the authenticated caller's session
// list. Removing a token that is not in the list still succeeds.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return apperror.ValidationFailed("refreshToken", "refreshToken is required")
	}

	if err := s.sessions.RemoveSessionToken(ctx, userID, refreshToken); err != nil {
		return fmt.Errorf("service/auth: removing refresh token: %w", err)
	}

	s.logger.Info("user logged out", slog.String("userID", userID))
	return nil
}

func invalidCredentials() *apperror.AppError {
	return apperror.ValidationFailed("", "invalid credentials")
}
