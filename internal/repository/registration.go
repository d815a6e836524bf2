package repository

import (
	"context"
	"time"

	"github.com/dbfpn/account-service/internal/domain"
)

// RegistrationRepository owns in-flight signups, keyed by email.
type RegistrationRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error)

	// Upsert inserts the pending registration, or atomically replaces an
	// existing row for the same email (new code, new expiry, attempts
	// reset). Two concurrent calls for one email cannot both "win": the
	// row always ends up holding exactly one code.
	Upsert(ctx context.Context, reg *domain.PendingRegistration) error

	// RotateCode stores a fresh code and expiry for an existing row and
	// resets the attempt counter. Returns domain.ErrNoPendingRegistration
	// if no row exists.
	RotateCode(ctx context.Context, email, otp string, expiresAt time.Time) error

	// RecordFailedAttempt increments the attempt counter and returns the
	// new value.
	RecordFailedAttempt(ctx context.Context, email string) (int, error)

	// Delete removes the row. Deleting an absent row is not an error.
	Delete(ctx context.Context, email string) error
}
