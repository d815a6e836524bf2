package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dbfpn/account-service/internal/domain"
	"github.com/dbfpn/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

type profileUsecaser interface {
	CheckCompletion(ctx context.Context, userID int64) (*usecase.ProfileStatus, error)
	Complete(ctx context.Context, userID int64, name, username string) error
}

type ProfileHandler struct {
	profile profileUsecaser
	logger  *slog.Logger
}

func NewProfileHandler(profile profileUsecaser, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profile: profile,
		logger:  logger.With("component", "profile_handler"),
	}
}

type profileStatusResponse struct {
	Complete bool    `json:"complete"`
	Username *string `json:"username"`
	Name     *string `json:"name"`
}

// GET /users/:id/profile-status
// Public: the initiate flow hands the frontend a user id and it asks
// here whether to route to profile completion.
func (h *ProfileHandler) Status(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		return
	}

	status, err := h.profile.CheckCompletion(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "check profile completion", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, profileStatusResponse{
		Complete: status.Complete,
		Username: status.Username,
		Name:     status.Name,
	})
}

type completeProfileRequest struct {
	Name     string `json:"name"     binding:"required"`
	Username string `json:"username" binding:"required"`
}

// POST /profile/complete (authenticated)
func (h *ProfileHandler) Complete(c *gin.Context) {
	userID, err := strconv.ParseInt(c.GetString("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
		return
	}

	var req completeProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profile.Complete(c.Request.Context(), userID, req.Name, req.Username); err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errUsernameTaken})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "complete profile", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
