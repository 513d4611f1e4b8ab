package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	"github.com/oksasatya/mood-diary/internal/domain/repository"
)

const userColumns = `id::text, username, name, hashed_password, created_at, updated_at, password_updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	id := uuid.NewString()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, name, hashed_password, created_at, updated_at, password_updated_at)
		VALUES ($1, $2, $3, $4, $5, $5, $5)
	`, id, u.Username, u.Name, u.HashedPassword, now)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	u.ID = id
	u.CreatedAt, u.UpdatedAt, u.PasswordUpdatedAt = now, now, now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET name = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+userColumns, name, time.Now().UTC(), id)
	return scanUser(row)
}

func (r *UserRepository) UpdateHashedPassword(ctx context.Context, id string, hashedPassword string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET hashed_password = $1, password_updated_at = $2, updated_at = $2
		WHERE id = $3
		RETURNING `+userColumns, hashedPassword, time.Now().UTC(), id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.HashedPassword,
		&u.CreatedAt, &u.UpdatedAt, &u.PasswordUpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
