package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	"github.com/oksasatya/mood-diary/internal/domain/repository"
)

const userColumns = `id, username, name, hashed_password, created_at, updated_at, password_updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	id := uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, name, hashed_password, created_at, updated_at, password_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, u.Username, u.Name, u.HashedPassword, formatTime(now), formatTime(now), formatTime(now))
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

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name string) (*entity.User, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = ?, updated_at = ? WHERE id = ?
	`, name, formatTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdateHashedPassword(ctx context.Context, id string, hashedPassword string) (*entity.User, error) {
	now := formatTime(time.Now())
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET hashed_password = ?, password_updated_at = ?, updated_at = ? WHERE id = ?
	`, hashedPassword, now, now, id)
	if err != nil {
		return nil, fmt.Errorf("update user password: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*entity.User, error) {
	var (
		u                              entity.User
		createdAt, updatedAt, pwdAtRaw string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.HashedPassword, &createdAt, &updatedAt, &pwdAtRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if u.PasswordUpdatedAt, err = parseTime(pwdAtRaw); err != nil {
		return nil, err
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
