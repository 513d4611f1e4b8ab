package repository

import (
	"context"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create assigns ID and timestamps to u. It returns ErrAlreadyExists when the username is taken.
	Create(ctx context.Context, u *entity.User) error
	UpdateProfile(ctx context.Context, id string, name string) (*entity.User, error)
	UpdateHashedPassword(ctx context.Context, id string, hashedPassword string) (*entity.User, error)
}
