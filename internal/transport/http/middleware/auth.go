package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"github.com/azimbek-dev/converter-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// tokenValidator is the subset of token.Validator the middleware needs.
// Defined here (point of use) so tests can inject a fake.
type tokenValidator interface {
	Validate(tokenString string, now time.Time) (string, error)
}

// Auth validates a Bearer access token and sets "userID" in the gin
// context. Every rejection uses the same 401 body; the failing stage is
// only visible in metrics.
func Auth(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		userID, err := validator.Validate(rawToken, time.Now())
		if err != nil {
			metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
		c.Set("userID", userID)
		c.Next()
	}
}

func validationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
