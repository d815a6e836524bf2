package domain

import (
	"errors"
	"time"
)

var (
	ErrTokenInvalid = errors.New("token is invalid or expired")
	ErrUnauthorized = errors.New("unauthorized")
)

// MagicToken is a single-use sign-in token. Only the SHA-256 hash of the
// emailed token is stored; claiming sets UsedAt so a token can never be
// redeemed twice.
type MagicToken struct {
	ID        string
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
