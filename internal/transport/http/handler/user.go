package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type currentUserer interface {
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type UserHandler struct {
	auth   currentUserer
	logger *slog.Logger
}

func NewUserHandler(auth currentUserer, logger *slog.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger.With("component", "user_handler")}
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// GET /api/v1/users/me
// Runs behind the Auth middleware, which puts the token subject into the
// gin context as "userID".
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "current user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
}
