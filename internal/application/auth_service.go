package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	repo "github.com/oksasatya/mood-diary/internal/domain/repository"
	"github.com/oksasatya/mood-diary/pkg/helpers"
)

type AuthService struct {
	Repo   repo.UserRepository
	Hasher *helpers.PasswordHasher
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, hasher *helpers.PasswordHasher, tokens *helpers.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, Hasher: hasher, Tokens: tokens, Logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password, name string) (*Profile, error) {
	hashed, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, Name: name, HashedPassword: hashed}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrUsernameAlreadyExists
		}
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return toProfile(u), nil
}

// Login answers the same error for an unknown username and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if u == nil || !s.Hasher.Verify(password, u.HashedPassword) {
		return nil, ErrIncorrectPasswordOrUserDoesNotExists
	}

	access, aexp, err := s.Tokens.CreateToken(helpers.AccessToken, u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return nil, err
	}
	refresh, rexp, err := s.Tokens.CreateToken(helpers.RefreshToken, u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return nil, err
	}
	return &TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh mints a new access token from a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.Tokens.DecodeToken(refreshToken)
	if err != nil || claims.Type != helpers.RefreshToken {
		return "", time.Time{}, ErrInvalidOrExpiredRefreshToken
	}
	return s.Tokens.CreateToken(helpers.AccessToken, claims.UserID)
}

// Authenticate resolves an access token to its user id.
func (s *AuthService) Authenticate(accessToken string) (string, error) {
	claims, err := s.Tokens.DecodeToken(accessToken)
	if err != nil || claims.Type != helpers.AccessToken {
		return "", ErrInvalidOrExpiredAccessToken
	}
	return claims.UserID, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(u), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if !s.Hasher.Verify(oldPassword, u.HashedPassword) {
		return ErrIncorrectOldPassword
	}
	hashed, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.Repo.UpdateHashedPassword(ctx, userID, hashed); err != nil {
		return mapUserErr(err)
	}
	s.Logger.WithField("user_id", userID).Info("password changed")
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string) (*Profile, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	u, err := s.Repo.UpdateProfile(ctx, userID, name)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return toProfile(u), nil
}

func (s *AuthService) getUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	return u, nil
}

func mapUserErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
