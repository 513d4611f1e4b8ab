package repository

import (
	"context"
	"time"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
)

// MoodFilter narrows a listing. Nil fields impose no constraint; set fields are ANDed.
// StartDate and EndDate are inclusive.
type MoodFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Value     *int
}

// MoodPatch carries a partial update. Nil fields keep their stored value.
type MoodPatch struct {
	Value *int
	Note  *string
}

// MoodRepository persists per-user, per-day mood entries.
type MoodRepository interface {
	Get(ctx context.Context, userID string, date time.Time) (*entity.MoodEntry, error)
	List(ctx context.Context, userID string, f MoodFilter) ([]entity.MoodEntry, error)
	// Create assigns ID and timestamps to e. It returns ErrAlreadyExists when (UserID, Date) is taken.
	Create(ctx context.Context, e *entity.MoodEntry) error
	Update(ctx context.Context, userID string, date time.Time, p MoodPatch) (*entity.MoodEntry, error)
	// Delete removes the entry and returns it as it was before removal.
	Delete(ctx context.Context, userID string, date time.Time) (*entity.MoodEntry, error)
}
