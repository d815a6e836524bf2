package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

// registrationUsecaser is the subset of RegistrationUsecase the handler
// needs. Defined here (point of use) so tests can inject a fake.
type registrationUsecaser interface {
	Initiate(ctx context.Context, email string, callbackURL *string) error
	Verify(ctx context.Context, email, otp string) (*usecase.VerifyResult, error)
	Resend(ctx context.Context, email string) error
}

// sessionIssuer signs a session JWT for a verified account.
type sessionIssuer interface {
	IssueSession(userID int64, email string) (string, error)
}

type RegistrationHandler struct {
	registration registrationUsecaser
	sessions     sessionIssuer
	logger       *slog.Logger
}

func NewRegistrationHandler(registration registrationUsecaser, sessions sessionIssuer, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registration: registration,
		sessions:     sessions,
		logger:       logger.With("component", "registration_handler"),
	}
}

type initiateRequest struct {
	Email       string  `json:"email" binding:"required"`
	CallbackURL *string `json:"callback_url"`
}

// POST /register
func (h *RegistrationHandler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.registration.Initiate(c.Request.Context(), req.Email, req.CallbackURL)
	if err != nil {
		var incomplete *domain.ProfileIncompleteError
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidEmail})
		case errors.As(err, &incomplete):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "profile_incomplete",
				"user_id": incomplete.UserID,
			})
		case errors.Is(err, domain.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": errAlreadyRegistered})
		default:
			h.logger.ErrorContext(c.Request.Context(), "initiate registration", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type verifyRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp"   binding:"required"`
}

type verifyResponse struct {
	Success     bool    `json:"success"`
	UserID      int64   `json:"user_id"`
	CallbackURL *string `json:"callback_url,omitempty"`
	Token       string  `json:"token"`
}

// POST /register/verify
func (h *RegistrationHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registration.Verify(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoPendingRegistration):
			c.JSON(http.StatusNotFound, gin.H{"error": errNoPendingRegistration})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusGone, gin.H{"error": errOTPExpired})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": errOTPInvalid})
		case errors.Is(err, domain.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": errTooManyAttempts})
		default:
			h.logger.ErrorContext(c.Request.Context(), "verify otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	token, err := h.sessions.IssueSession(result.UserID, req.Email)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "issue session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Success:     true,
		UserID:      result.UserID,
		CallbackURL: result.CallbackURL,
		Token:       token,
	})
}

type resendRequest struct {
	Email string `json:"email" binding:"required"`
}

// POST /register/resend
func (h *RegistrationHandler) Resend(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.Resend(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNoPendingRegistration) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNoPendingRegistration})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "resend otp", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
