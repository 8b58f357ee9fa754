package httptransport

import (
	"log/slog"

	"github.com/azimbek-dev/converter-api/internal/token"
	"github.com/azimbek-dev/converter-api/internal/transport/http/handler"
	"github.com/azimbek-dev/converter-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, validator *token.Validator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health)

	// Protected routes
	protected := v1.Group("", middleware.Auth(validator))
	protected.GET("/users/me", userHandler.Me)

	return r
}
