package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/transport/http/handler"
	"github.com/dbfpn/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"log/slog"
	"os"
)

type fakeProfileUsecase struct {
	checkCompletion func(ctx context.Context, userID int64) (*usecase.ProfileStatus, error)
	complete        func(ctx context.Context, userID int64, name, username string) error
}

func (f *fakeProfileUsecase) CheckCompletion(ctx context.Context, userID int64) (*usecase.ProfileStatus, error) {
	return f.checkCompletion(ctx, userID)
}

func (f *fakeProfileUsecase) Complete(ctx context.Context, userID int64, name, username string) error {
	return f.complete(ctx, userID, name, username)
}

// newProfileEngine simulates the auth middleware by setting userID from
// the Authorization header verbatim.
func newProfileEngine(uc *fakeProfileUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewProfileHandler(uc, logger)

	r := gin.New()
	r.GET("/users/:id/profile-status", h.Status)
	r.POST("/profile/complete", func(c *gin.Context) {
		if sub := c.GetHeader("Authorization"); sub != "" {
			c.Set("userID", sub)
		}
		h.Complete(c)
	})
	return r
}

func strPtr(s string) *string { return &s }

// ---- Status ----

func TestProfileStatus_NonNumericID_Returns404(t *testing.T) {
	uc := &fakeProfileUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/abc/profile-status", nil)
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestProfileStatus_UserNotFound_Returns404(t *testing.T) {
	uc := &fakeProfileUsecase{
		checkCompletion: func(_ context.Context, _ int64) (*usecase.ProfileStatus, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/99/profile-status", nil)
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestProfileStatus_Incomplete_ReturnsFalseWithNulls(t *testing.T) {
	uc := &fakeProfileUsecase{
		checkCompletion: func(_ context.Context, userID int64) (*usecase.ProfileStatus, error) {
			if userID != 7 {
				t.Errorf("userID = %d, want 7", userID)
			}
			return &usecase.ProfileStatus{Complete: false}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/7/profile-status", nil)
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Complete bool    `json:"complete"`
		Username *string `json:"username"`
		Name     *string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Complete {
		t.Error("complete = true, want false")
	}
	if body.Username != nil || body.Name != nil {
		t.Errorf("username = %v, name = %v, want both null", body.Username, body.Name)
	}
}

func TestProfileStatus_Complete_ReturnsProfile(t *testing.T) {
	uc := &fakeProfileUsecase{
		checkCompletion: func(_ context.Context, _ int64) (*usecase.ProfileStatus, error) {
			return &usecase.ProfileStatus{
				Complete: true,
				Username: strPtr("moviefan"),
				Name:     strPtr("Movie Fan"),
			}, nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/7/profile-status", nil)
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"complete":true`) {
		t.Errorf("body = %s, want complete true", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "moviefan") {
		t.Errorf("body = %s, want username", w.Body.String())
	}
}

// ---- Complete ----

func TestProfileComplete_NoAuth_Returns401(t *testing.T) {
	uc := &fakeProfileUsecase{}
	w := postJSON(t, newProfileEngine(uc), "/profile/complete",
		`{"name":"New User","username":"newuser"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProfileComplete_MissingFields_Returns400(t *testing.T) {
	uc := &fakeProfileUsecase{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile/complete",
		strings.NewReader(`{"name":"New User"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "7")
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestProfileComplete_UsernameTaken_Returns409(t *testing.T) {
	uc := &fakeProfileUsecase{
		complete: func(_ context.Context, _ int64, _, _ string) error {
			return domain.ErrUsernameTaken
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile/complete",
		strings.NewReader(`{"name":"New User","username":"taken"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "7")
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestProfileComplete_Success_PassesClaims(t *testing.T) {
	uc := &fakeProfileUsecase{
		complete: func(_ context.Context, userID int64, name, username string) error {
			if userID != 7 {
				t.Errorf("userID = %d, want 7", userID)
			}
			if name != "New User" || username != "newuser" {
				t.Errorf("complete(%q, %q), want New User, newuser", name, username)
			}
			return nil
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile/complete",
		strings.NewReader(`{"name":"New User","username":"newuser"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "7")
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestProfileComplete_UsecaseError_Returns500(t *testing.T) {
	uc := &fakeProfileUsecase{
		complete: func(_ context.Context, _ int64, _, _ string) error {
			return errors.New("db down")
		},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profile/complete",
		strings.NewReader(`{"name":"New User","username":"newuser"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "7")
	newProfileEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
