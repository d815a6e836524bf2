package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrNoPendingRegistration = errors.New("no pending registration for email")
	ErrOTPExpired            = errors.New("otp expired")
	ErrOTPInvalid            = errors.New("otp invalid")
	ErrTooManyAttempts       = errors.New("too many verification attempts")
)

// PendingRegistration is an in-flight signup keyed by email. At most one
// row exists per email: a repeated initiate replaces the row (and with it
// the code), resend rotates the code in place, and a successful or
// expired verify deletes it. Expiry is checked on read; nothing sweeps
// the table in the background.
type PendingRegistration struct {
	Email       string
	OTP         string
	CallbackURL *string
	Attempts    int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the code is past its validity window.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
