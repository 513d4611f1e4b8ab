package entity

import (
	"time"
)

// DateLayout is the calendar-day wire and storage format of a mood entry.
const DateLayout = "2006-01-02"

const (
	MinMoodValue = 1
	MaxMoodValue = 10
)

// MoodEntry is a user's rating for a single calendar day.
// (UserID, Date) is unique.
type MoodEntry struct {
	ID        string
	UserID    string
	Date      time.Time // midnight UTC
	Value     int
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders the calendar day of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
