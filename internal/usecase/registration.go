package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/email"
	"github.com/dbfpn/account-service/internal/metrics"
	"github.com/dbfpn/account-service/internal/otp"
	"github.com/dbfpn/account-service/internal/repository"
)

const (
	otpTTL = 10 * time.Minute

	// A wrong code keeps the pending row alive so the user can retry,
	// but only this many times before the row is revoked outright.
	maxVerifyAttempts = 5
)

// Same syntactic shape the web frontend enforces: something@something.tld,
// no whitespace.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegistrationUsecase orchestrates the OTP signup protocol. It holds no
// state between calls; every operation is a self-contained
// read-modify-write against the stores.
type RegistrationUsecase struct {
	users   repository.UserRepository
	pending repository.RegistrationRepository
	email   email.Sender
}

func NewRegistrationUsecase(users repository.UserRepository, pending repository.RegistrationRepository, emailSender email.Sender) *RegistrationUsecase {
	return &RegistrationUsecase{
		users:   users,
		pending: pending,
		email:   emailSender,
	}
}

// VerifyResult is returned on successful OTP verification.
type VerifyResult struct {
	UserID      int64
	CallbackURL *string
}

// Initiate starts a signup for email. Any still-valid code previously
// issued for the same address is revoked by the upsert. The pending row
// is written before the email goes out; a failed send leaves it in
// place, so the user can fall back to resend.
func (u *RegistrationUsecase) Initiate(ctx context.Context, emailAddr string, callbackURL *string) error {
	if !emailRe.MatchString(emailAddr) {
		metrics.RegistrationsInitiatedTotal.WithLabelValues("invalid_email").Inc()
		return domain.ErrInvalidEmail
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		if !user.ProfileComplete() {
			metrics.RegistrationsInitiatedTotal.WithLabelValues("profile_incomplete").Inc()
			return &domain.ProfileIncompleteError{UserID: user.ID}
		}
		metrics.RegistrationsInitiatedTotal.WithLabelValues("already_registered").Inc()
		return domain.ErrAlreadyRegistered
	case !errors.Is(err, domain.ErrUserNotFound):
		metrics.RegistrationsInitiatedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("find user: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		metrics.RegistrationsInitiatedTotal.WithLabelValues("error").Inc()
		return err
	}

	reg := &domain.PendingRegistration{
		Email:       emailAddr,
		OTP:         code,
		CallbackURL: callbackURL,
		ExpiresAt:   time.Now().Add(otpTTL),
	}
	if err := u.pending.Upsert(ctx, reg); err != nil {
		metrics.RegistrationsInitiatedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("store pending registration: %w", err)
	}

	if err := u.sendCode(ctx, emailAddr, code, "otp", email.OTPSubject); err != nil {
		metrics.RegistrationsInitiatedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsInitiatedTotal.WithLabelValues("success").Inc()
	return nil
}

// Verify checks the submitted code against the pending registration and,
// on match, promotes the signup into a confirmed account. The user row
// is created before the pending row is deleted; the worst crash leaves a
// stale pending row that Initiate rejects as already registered.
func (u *RegistrationUsecase) Verify(ctx context.Context, emailAddr, code string) (*VerifyResult, error) {
	pending, err := u.pending.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingRegistration) {
			metrics.OTPVerificationsTotal.WithLabelValues("no_pending").Inc()
			return nil, err
		}
		metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("find pending registration: %w", err)
	}

	if pending.Expired(time.Now()) {
		// Expired codes are purged on first verify attempt, not by a
		// background sweeper.
		if err := u.pending.Delete(ctx, emailAddr); err != nil {
			metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("purge expired registration: %w", err)
		}
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrOTPExpired
	}

	if pending.OTP != code {
		attempts, err := u.pending.RecordFailedAttempt(ctx, emailAddr)
		if err != nil {
			metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("record failed attempt: %w", err)
		}
		if attempts >= maxVerifyAttempts {
			if err := u.pending.Delete(ctx, emailAddr); err != nil {
				metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("revoke locked registration: %w", err)
			}
			metrics.OTPVerificationsTotal.WithLabelValues("locked_out").Inc()
			return nil, domain.ErrTooManyAttempts
		}
		metrics.OTPVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrOTPInvalid
	}

	user, err := u.users.Create(ctx, emailAddr, time.Now())
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := u.pending.Delete(ctx, emailAddr); err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("delete pending registration: %w", err)
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	return &VerifyResult{UserID: user.ID, CallbackURL: pending.CallbackURL}, nil
}

// Resend rotates the code of an existing pending registration in place
// and emails the new one. There is nothing to resend for an email with
// no pending row.
func (u *RegistrationUsecase) Resend(ctx context.Context, emailAddr string) error {
	if _, err := u.pending.FindByEmail(ctx, emailAddr); err != nil {
		if errors.Is(err, domain.ErrNoPendingRegistration) {
			return err
		}
		return fmt.Errorf("find pending registration: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	if err := u.pending.RotateCode(ctx, emailAddr, code, time.Now().Add(otpTTL)); err != nil {
		return fmt.Errorf("rotate otp: %w", err)
	}

	return u.sendCode(ctx, emailAddr, code, "otp_resend", email.OTPResendSubject)
}

func (u *RegistrationUsecase) sendCode(ctx context.Context, to, code, kind, subject string) error {
	err := u.email.Send(ctx, to, subject, email.OTPText(code), email.OTPHTML(code))
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("send otp email: %w", err)
	}
	metrics.EmailsSentTotal.WithLabelValues(kind, "sent").Inc()
	return nil
}
