package repository

import "errors"

// Store-boundary outcomes. Implementations may wrap them; match with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
