package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
	repo "github.com/oksasatya/mood-diary/internal/domain/repository"
)

type MoodService struct {
	Repo   repo.MoodRepository
	Logger *logrus.Logger
}

func NewMoodService(r repo.MoodRepository, logger *logrus.Logger) *MoodService {
	return &MoodService{Repo: r, Logger: logger}
}

type CreateMoodInput struct {
	Date  time.Time
	Value int
	Note  string
}

func (s *MoodService) Create(ctx context.Context, userID string, in CreateMoodInput) (*MoodStamp, error) {
	if !validValue(in.Value) {
		return nil, ErrIncorrectMoodValue
	}
	e := &entity.MoodEntry{UserID: userID, Date: entity.Day(in.Date), Value: in.Value, Note: in.Note}
	if err := s.Repo.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrMoodStampAlreadyExists
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "date": entity.FormatDate(e.Date)}).Debug("mood stamp created")
	return toMoodStamp(e), nil
}

func (s *MoodService) Get(ctx context.Context, userID string, date time.Time) (*MoodStamp, error) {
	e, err := s.Repo.Get(ctx, userID, date)
	if err != nil {
		return nil, mapMoodErr(err)
	}
	return toMoodStamp(e), nil
}

// List returns the matching entries ordered by date; no match is an empty slice.
func (s *MoodService) List(ctx context.Context, userID string, f repo.MoodFilter) ([]MoodStamp, error) {
	entries, err := s.Repo.List(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]MoodStamp, 0, len(entries))
	for i := range entries {
		out = append(out, *toMoodStamp(&entries[i]))
	}
	return out, nil
}

func (s *MoodService) Update(ctx context.Context, userID string, date time.Time, p repo.MoodPatch) (*MoodStamp, error) {
	if p.Value != nil && !validValue(*p.Value) {
		return nil, ErrIncorrectMoodValue
	}
	e, err := s.Repo.Update(ctx, userID, date, p)
	if err != nil {
		return nil, mapMoodErr(err)
	}
	return toMoodStamp(e), nil
}

func (s *MoodService) Delete(ctx context.Context, userID string, date time.Time) error {
	if _, err := s.Repo.Delete(ctx, userID, date); err != nil {
		return mapMoodErr(err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "date": entity.FormatDate(date)}).Debug("mood stamp deleted")
	return nil
}

func validValue(v int) bool {
	return v >= entity.MinMoodValue && v <= entity.MaxMoodValue
}

func mapMoodErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrMoodStampNotExist
	}
	return err
}
