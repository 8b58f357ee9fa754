package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"github.com/azimbek-dev/converter-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string, now time.Time) (string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			metrics.RegistrationsTotal.WithLabelValues("weak_password").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errWeakPassword})
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, registerResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
}

// POST /auth/login
// Unknown email, wrong password, and inactive account all produce the
// same 401 body so responses cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokenStr, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		case errors.Is(err, domain.ErrAccountInactive):
			metrics.LoginsTotal.WithLabelValues("inactive").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: tokenStr,
		TokenType:   "bearer",
	})
}
