package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/email"
	"github.com/dbfpn/account-service/internal/metrics"
	"github.com/dbfpn/account-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenTTL = 15 * time.Minute
	defaultJWTTTL   = 24 * time.Hour
)

// AuthUsecase signs existing users in via emailed magic links and issues
// the session JWTs used by both sign-in paths. Unlike registration, it
// never creates accounts.
type AuthUsecase struct {
	users         repository.UserRepository
	email         email.Sender
	jwtKey        []byte
	tokenTTL      time.Duration
	jwtTTL        time.Duration
	magicLinkBase string
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, magicLinkBase string) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		email:         emailSender,
		jwtKey:        jwtKey,
		tokenTTL:      defaultTokenTTL,
		jwtTTL:        defaultJWTTTL,
		magicLinkBase: magicLinkBase,
	}
}

// RequestMagicLink generates a secure token for an existing user, stores
// its hash, and emails the verify link. Unknown emails return
// ErrUserNotFound; the handler swallows it so responses do not reveal
// which addresses have accounts.
func (u *AuthUsecase) RequestMagicLink(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("find user: %w", err)
	}

	raw := make([]byte, 32)
	if _, err = io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	rawToken := fmt.Sprintf("%x", raw)
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	expiresAt := time.Now().Add(u.tokenTTL)
	if err = u.users.CreateMagicToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("store magic token: %w", err)
	}

	link := u.magicLinkBase + "/auth/verify?token=" + rawToken
	err = u.email.Send(ctx, emailAddr, email.MagicLinkSubject,
		email.MagicLinkText(link), email.MagicLinkHTML(link))
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues("magic_link", "error").Inc()
		return fmt.Errorf("send magic link: %w", err)
	}
	metrics.EmailsSentTotal.WithLabelValues("magic_link", "sent").Inc()
	return nil
}

// VerifyMagicLink hashes the raw token, atomically claims it, and
// returns a signed session JWT.
func (u *AuthUsecase) VerifyMagicLink(ctx context.Context, rawToken string) (string, error) {
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	mt, err := u.users.ClaimMagicToken(ctx, tokenHash)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}

	user, err := u.users.FindByID(ctx, mt.UserID)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	return u.IssueSession(user.ID, user.Email)
}

// IssueSession signs a session JWT. Also used right after a successful
// OTP verification so the new account can complete its profile without a
// second sign-in round trip.
func (u *AuthUsecase) IssueSession(userID int64, emailAddr string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": emailAddr,
		"iat":   now.Unix(),
		"exp":   now.Add(u.jwtTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
