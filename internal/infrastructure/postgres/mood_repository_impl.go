package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	"github.com/oksasatya/mood-diary/internal/domain/repository"
)

const moodColumns = `id::text, user_id::text, date, value, note, created_at, updated_at`

type MoodRepository struct {
	pool *pgxpool.Pool
}

func NewMoodRepository(pool *pgxpool.Pool) *MoodRepository {
	return &MoodRepository{pool: pool}
}

func (r *MoodRepository) Get(ctx context.Context, userID string, date time.Time) (*entity.MoodEntry, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+moodColumns+` FROM moodstamps WHERE user_id = $1 AND date = $2
	`, userID, entity.Day(date))
	return scanMood(row)
}

func (r *MoodRepository) List(ctx context.Context, userID string, f repository.MoodFilter) ([]entity.MoodEntry, error) {
	out := make([]entity.MoodEntry, 0)
	if !validID(userID) {
		return out, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + moodColumns + ` FROM moodstamps WHERE user_id = $1`)
	args := []any{userID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.StartDate != nil {
		sb.WriteString(` AND date >= ` + arg(entity.Day(*f.StartDate)))
	}
	if f.EndDate != nil {
		sb.WriteString(` AND date <= ` + arg(entity.Day(*f.EndDate)))
	}
	if f.Value != nil {
		sb.WriteString(` AND value = ` + arg(*f.Value))
	}
	sb.WriteString(` ORDER BY date`)

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood entries: %w", err)
	}
	return out, nil
}

func (r *MoodRepository) Create(ctx context.Context, e *entity.MoodEntry) error {
	now := time.Now().UTC()
	id := uuid.NewString()
	day := entity.Day(e.Date)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO moodstamps (id, user_id, date, value, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, id, e.UserID, day, e.Value, e.Note, now)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("insert mood entry: %w", err)
	}

	e.ID = id
	e.Date = day
	e.CreatedAt, e.UpdatedAt = now, now
	return nil
}

// Update applies only the fields set in p; COALESCE keeps the rest.
func (r *MoodRepository) Update(ctx context.Context, userID string, date time.Time, p repository.MoodPatch) (*entity.MoodEntry, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE moodstamps
		SET value = COALESCE($1, value), note = COALESCE($2, note), updated_at = $3
		WHERE user_id = $4 AND date = $5
		RETURNING `+moodColumns, p.Value, p.Note, time.Now().UTC(), userID, entity.Day(date))
	return scanMood(row)
}

func (r *MoodRepository) Delete(ctx context.Context, userID string, date time.Time) (*entity.MoodEntry, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM moodstamps WHERE user_id = $1 AND date = $2
		RETURNING `+moodColumns, userID, entity.Day(date))
	return scanMood(row)
}

func scanMood(row pgx.Row) (*entity.MoodEntry, error) {
	e := &entity.MoodEntry{}
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.Value, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan mood entry: %w", err)
	}
	e.Date = entity.Day(e.Date)
	return e, nil
}

var _ repository.MoodRepository = (*MoodRepository)(nil)
