package application

import "net/http"

// Error is a failure with a fixed, client-facing HTTP status and message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrUsernameAlreadyExists                = &Error{http.StatusBadRequest, "Username already exists"}
	ErrIncorrectPasswordOrUserDoesNotExists = &Error{http.StatusUnauthorized, "Incorrect password or username does not exist"}
	ErrInvalidOrExpiredRefreshToken         = &Error{http.StatusUnauthorized, "Invalid or expired refresh token"}
	ErrInvalidOrExpiredAccessToken          = &Error{http.StatusUnauthorized, "Invalid or expired access token"}
	ErrIncorrectOldPassword                 = &Error{http.StatusUnauthorized, "Incorrect old password"}
	ErrUserNotFound                         = &Error{http.StatusNotFound, "User not found"}

	ErrMoodStampAlreadyExists = &Error{http.StatusBadRequest, "MoodStamp already exists"}
	ErrMoodStampNotExist      = &Error{http.StatusNotFound, "MoodStamp does not exist"}
	ErrIncorrectMoodValue     = &Error{http.StatusUnprocessableEntity, "MoodValue in wrong format"}
)
