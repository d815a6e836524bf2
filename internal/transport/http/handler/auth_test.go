package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
	"log/slog"
	"os"
)

// fakeAuthUsecase implements the unexported authUsecaser interface via
// method matching.
type fakeAuthUsecase struct {
	requestMagicLink func(ctx context.Context, email string) error
	verifyMagicLink  func(ctx context.Context, rawToken string) (string, error)
}

func (f *fakeAuthUsecase) RequestMagicLink(ctx context.Context, email string) error {
	return f.requestMagicLink(ctx, email)
}

func (f *fakeAuthUsecase) VerifyMagicLink(ctx context.Context, rawToken string) (string, error) {
	return f.verifyMagicLink(ctx, rawToken)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/auth/magic-link", h.RequestMagicLink)
	r.GET("/auth/verify", h.Verify)
	return r
}

// ---- RequestMagicLink ----

func TestRequestMagicLink_InvalidJSON_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc), "/auth/magic-link", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRequestMagicLink_InvalidEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := postJSON(t, newAuthEngine(uc), "/auth/magic-link", `{"email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRequestMagicLink_UnknownEmail_StillReturns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		requestMagicLink: func(_ context.Context, _ string) error {
			return domain.ErrUserNotFound
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/magic-link", `{"email":"ghost@example.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (must not reveal whether account exists)", w.Code)
	}
}

func TestRequestMagicLink_UsecaseError_StillReturns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		requestMagicLink: func(_ context.Context, _ string) error {
			return errors.New("internal failure")
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/magic-link", `{"email":"test@example.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (must not reveal errors)", w.Code)
	}
}

func TestRequestMagicLink_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		requestMagicLink: func(_ context.Context, email string) error {
			if email != "test@example.com" {
				t.Errorf("email = %q, want test@example.com", email)
			}
			return nil
		},
	}
	w := postJSON(t, newAuthEngine(uc), "/auth/magic-link", `{"email":"test@example.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// ---- Verify ----

func TestMagicLinkVerify_MissingToken_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMagicLinkVerify_InvalidToken_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyMagicLink: func(_ context.Context, _ string) (string, error) {
			return "", domain.ErrTokenInvalid
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token=bogus", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMagicLinkVerify_UsecaseError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyMagicLink: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("db down")
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token=abc", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestMagicLinkVerify_Success_ReturnsJWT(t *testing.T) {
	uc := &fakeAuthUsecase{
		verifyMagicLink: func(_ context.Context, rawToken string) (string, error) {
			if rawToken != "valid-raw-token" {
				t.Errorf("rawToken = %q, want valid-raw-token", rawToken)
			}
			return "signed-jwt", nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/verify?token=valid-raw-token", nil)
	newAuthEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Token != "signed-jwt" {
		t.Errorf("token = %q, want signed-jwt", body.Token)
	}
}
