package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken     = errors.New("username already taken")
)

// User is a confirmed account. Its existence implies the email address
// has been verified. An empty username or name means the profile has not
// been completed yet; there is no separate flag for that state.
type User struct {
	ID            int64
	Email         string
	EmailVerified *time.Time
	Username      *string
	Name          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileComplete reports whether both profile fields have been filled.
func (u *User) ProfileComplete() bool {
	return u.Username != nil && *u.Username != "" && u.Name != nil && *u.Name != ""
}

// ProfileIncompleteError steers a caller who tried to re-register an
// existing account toward profile completion instead.
type ProfileIncompleteError struct {
	UserID int64
}

func (e *ProfileIncompleteError) Error() string {
	return fmt.Sprintf("profile incomplete for user %d", e.UserID)
}
