package httptransport

import (
	"log/slog"
	"time"

	"github.com/dbfpn/account-service/internal/transport/http/handler"
	"github.com/dbfpn/account-service/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	sloggin "github.com/samber/slog-gin"
)

// Registration and sign-in endpoints trigger outbound email, so they get
// a tighter per-IP budget than the rest of the API.
const (
	emailRouteLimit  = 5
	emailRouteWindow = time.Minute
)

func NewRouter(
	logger *slog.Logger,
	registrationHandler *handler.RegistrationHandler,
	profileHandler *handler.ProfileHandler,
	authHandler *handler.AuthHandler,
	rdb *redis.Client,
	jwtKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	emailLimit := middleware.RateLimit(rdb, emailRouteLimit, emailRouteWindow)

	// Registration protocol
	register := r.Group("/register")
	register.POST("", emailLimit, registrationHandler.Initiate)
	register.POST("/verify", registrationHandler.Verify)
	register.POST("/resend", emailLimit, registrationHandler.Resend)

	// Magic-link sign-in
	auth := r.Group("/auth")
	auth.POST("/magic-link", emailLimit, authHandler.RequestMagicLink)
	auth.GET("/verify", authHandler.Verify)

	// Profile
	r.GET("/users/:id/profile-status", profileHandler.Status)
	r.POST("/profile/complete", middleware.Auth(jwtKey), profileHandler.Complete)

	return r
}
