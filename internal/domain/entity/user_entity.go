package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// HashedPassword holds "hex(salt)<sep>hex(digest)" and never leaves the store/auth boundary.
type User struct {
	ID                string
	Username          string
	Name              string
	HashedPassword    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PasswordUpdatedAt time.Time
}
