package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers GET /api/v1/health. Liveness only; dependency checks
// live on the metrics server's /readyz.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
