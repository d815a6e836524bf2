package repository

import (
	"context"
	"time"

	"github.com/dbfpn/account-service/internal/domain"
)

// UserRepository owns confirmed accounts and their magic sign-in tokens.
// Email and username are unique keys; Create enforces both at the store
// level, not via a prior read.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create inserts a verified account. verifiedAt becomes the
	// email_verified timestamp; username and name stay empty until
	// profile completion.
	Create(ctx context.Context, email string, verifiedAt time.Time) (*domain.User, error)

	// UpdateProfile fills username and name for an existing account.
	UpdateProfile(ctx context.Context, id int64, name, username string) error

	CreateMagicToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error

	// ClaimMagicToken atomically marks an unused, unexpired token as used
	// and returns it. A second claim of the same token fails.
	ClaimMagicToken(ctx context.Context, tokenHash string) (*domain.MagicToken, error)
}
