package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT email, otp, callback_url, attempts, expires_at, created_at
		 FROM pending_registrations WHERE email = $1`,
		email,
	)

	var p domain.PendingRegistration
	err := row.Scan(&p.Email, &p.OTP, &p.CallbackURL, &p.Attempts, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoPendingRegistration
		}
		return nil, fmt.Errorf("find pending registration: %w", err)
	}
	return &p, nil
}

// Upsert replaces any existing row for the email in a single statement,
// so two concurrent initiates cannot leave two live codes behind.
func (r *RegistrationRepository) Upsert(ctx context.Context, reg *domain.PendingRegistration) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO pending_registrations (email, otp, callback_url, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE
		 SET otp = EXCLUDED.otp,
		     callback_url = EXCLUDED.callback_url,
		     expires_at = EXCLUDED.expires_at,
		     attempts = 0,
		     created_at = now()`,
		reg.Email, reg.OTP, reg.CallbackURL, reg.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert pending registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) RotateCode(ctx context.Context, email, otp string, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pending_registrations
		 SET otp = $2, expires_at = $3, attempts = 0
		 WHERE email = $1`,
		email, otp, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("rotate otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoPendingRegistration
	}
	return nil
}

func (r *RegistrationRepository) RecordFailedAttempt(ctx context.Context, email string) (int, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE pending_registrations
		 SET attempts = attempts + 1
		 WHERE email = $1
		 RETURNING attempts`,
		email,
	)

	var attempts int
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNoPendingRegistration
		}
		return 0, fmt.Errorf("record failed attempt: %w", err)
	}
	return attempts, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM pending_registrations WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete pending registration: %w", err)
	}
	return nil
}
