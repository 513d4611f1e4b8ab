package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	"github.com/oksasatya/mood-diary/internal/domain/repository"
)

const moodColumns = `id, user_id, date, value, note, created_at, updated_at`

type MoodRepository struct {
	db *sql.DB
}

func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MoodRepository) Get(ctx context.Context, userID string, date time.Time) (*entity.MoodEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+moodColumns+` FROM moodstamps WHERE user_id = ? AND date = ?
	`, userID, entity.FormatDate(date))
	e, err := scanMood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return e, err
}

func (r *MoodRepository) List(ctx context.Context, userID string, f repository.MoodFilter) ([]entity.MoodEntry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + moodColumns + ` FROM moodstamps WHERE user_id = ?`)
	args := []any{userID}

	if f.StartDate != nil {
		sb.WriteString(` AND date >= ?`)
		args = append(args, entity.FormatDate(*f.StartDate))
	}
	if f.EndDate != nil {
		sb.WriteString(` AND date <= ?`)
		args = append(args, entity.FormatDate(*f.EndDate))
	}
	if f.Value != nil {
		sb.WriteString(` AND value = ?`)
		args = append(args, *f.Value)
	}
	sb.WriteString(` ORDER BY date`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query mood entries: %w", err)
	}
	defer rows.Close()

	out := make([]entity.MoodEntry, 0)
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
	_, err := r.Get(ctx, e.UserID, e.Date)
	switch {
	case err == nil:
		return repository.ErrAlreadyExists
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO moodstamps (id, user_id, date, value, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, e.UserID, entity.FormatDate(e.Date), e.Value, e.Note, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("insert mood entry: %w", err)
	}

	e.ID = id
	e.Date = entity.Day(e.Date)
	e.CreatedAt, e.UpdatedAt = now, now
	return nil
}

func (r *MoodRepository) Update(ctx context.Context, userID string, date time.Time, p repository.MoodPatch) (*entity.MoodEntry, error) {
	cur, err := r.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if p.Value != nil {
		cur.Value = *p.Value
	}
	if p.Note != nil {
		cur.Note = *p.Note
	}
	cur.UpdatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx, `
		UPDATE moodstamps SET value = ?, note = ?, updated_at = ? WHERE user_id = ? AND date = ?
	`, cur.Value, cur.Note, formatTime(cur.UpdatedAt), userID, entity.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("update mood entry: %w", err)
	}
	return cur, nil
}

func (r *MoodRepository) Delete(ctx context.Context, userID string, date time.Time) (*entity.MoodEntry, error) {
	cur, err := r.Get(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM moodstamps WHERE user_id = ? AND date = ?
	`, userID, entity.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("delete mood entry: %w", err)
	}
	return cur, nil
}

func scanMood(s rowScanner) (*entity.MoodEntry, error) {
	var (
		e                             entity.MoodEntry
		date, createdAt, updatedAtRaw string
	)
	if err := s.Scan(&e.ID, &e.UserID, &date, &e.Value, &e.Note, &createdAt, &updatedAtRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan mood entry: %w", err)
	}

	var err error
	if e.Date, err = entity.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parse mood date %q: %w", date, err)
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAtRaw); err != nil {
		return nil, err
	}
	return &e, nil
}

var _ repository.MoodRepository = (*MoodRepository)(nil)
