package application

import (
	"time"

	"github.com/oksasatya/mood-diary/internal/domain/entity"
)

// Profile is the public view of a user. It never carries the password hash.
type Profile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	PasswordUpdatedAt time.Time `json:"password_updated_at"`
}

type MoodStamp struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Value     int       `json:"value"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func toProfile(u *entity.User) *Profile {
	return &Profile{
		ID:                u.ID,
		Username:          u.Username,
		Name:              u.Name,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
		PasswordUpdatedAt: u.PasswordUpdatedAt,
	}
}

func toMoodStamp(e *entity.MoodEntry) *MoodStamp {
	return &MoodStamp{
		ID:        e.ID,
		UserID:    e.UserID,
		Date:      entity.FormatDate(e.Date),
		Value:     e.Value,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
