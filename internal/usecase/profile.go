package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/repository"
)

// ProfileUsecase covers the post-verification half of signup: a fresh
// account has neither username nor name until its owner completes the
// profile.
type ProfileUsecase struct {
	users repository.UserRepository
}

func NewProfileUsecase(users repository.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{users: users}
}

// ProfileStatus reports completeness plus the raw field values.
type ProfileStatus struct {
	Complete bool
	Username *string
	Name     *string
}

// CheckCompletion is read-only: complete means both username and name
// are filled.
func (u *ProfileUsecase) CheckCompletion(ctx context.Context, userID int64) (*ProfileStatus, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &ProfileStatus{
		Complete: user.ProfileComplete(),
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Complete fills username and name. The username must not belong to
// another account; the store's unique index backs the check against
// concurrent completions.
func (u *ProfileUsecase) Complete(ctx context.Context, userID int64, name, username string) error {
	existing, err := u.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.ID != userID {
			return domain.ErrUsernameTaken
		}
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("check username: %w", err)
	}

	if err := u.users.UpdateProfile(ctx, userID, name, username); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
