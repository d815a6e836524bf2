package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/usecase"
)

func strPtr(s string) *string { return &s }

// ---- CheckCompletion ----

func TestCheckCompletion_NotFound(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ int64) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, err := usecase.NewProfileUsecase(repo).CheckCompletion(context.Background(), 99)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestCheckCompletion_IncompleteWithoutUsername(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ int64) (*domain.User, error) {
			return &domain.User{ID: 1, Email: "a@b.id", Name: strPtr("Tara P")}, nil
		},
	}

	status, err := usecase.NewProfileUsecase(repo).CheckCompletion(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Complete {
		t.Error("profile without username reported complete")
	}
	if status.Name == nil || *status.Name != "Tara P" {
		t.Errorf("Name = %v, want Tara P", status.Name)
	}
}

func TestCheckCompletion_Complete(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ int64) (*domain.User, error) {
			return &domain.User{ID: 1, Email: "a@b.id", Username: strPtr("tara"), Name: strPtr("Tara P")}, nil
		},
	}

	status, err := usecase.NewProfileUsecase(repo).CheckCompletion(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Complete {
		t.Error("complete profile reported incomplete")
	}
}

// ---- Complete ----

func TestComplete_UsernameTakenByOtherUser(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 2, Username: &username}, nil
		},
		updateProfile: func(_ context.Context, _ int64, _, _ string) error {
			t.Error("profile updated despite taken username")
			return nil
		},
	}

	err := usecase.NewProfileUsecase(repo).Complete(context.Background(), 1, "Tara P", "tara")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestComplete_OwnUsername_IsNotTaken(t *testing.T) {
	var updated bool
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: &username}, nil
		},
		updateProfile: func(_ context.Context, id int64, name, username string) error {
			updated = true
			if id != 1 || name != "Tara P" || username != "tara" {
				t.Errorf("UpdateProfile(%d, %q, %q)", id, name, username)
			}
			return nil
		},
	}

	if err := usecase.NewProfileUsecase(repo).Complete(context.Background(), 1, "Tara P", "tara"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("profile not updated")
	}
}

func TestComplete_FreshUsername(t *testing.T) {
	var updated bool
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		updateProfile: func(_ context.Context, _ int64, _, _ string) error {
			updated = true
			return nil
		},
	}

	if err := usecase.NewProfileUsecase(repo).Complete(context.Background(), 1, "Tara P", "tara"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("profile not updated")
	}
}

func TestComplete_RaceLostOnUniqueIndex(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		updateProfile: func(_ context.Context, _ int64, _, _ string) error {
			return domain.ErrUsernameTaken
		},
	}

	err := usecase.NewProfileUsecase(repo).Complete(context.Background(), 1, "Tara P", "tara")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}
