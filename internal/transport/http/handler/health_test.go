package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/azimbek-dev/converter-api/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

func TestHealth_ReturnsHealthy(t *testing.T) {
	r := gin.New()
	r.GET("/api/v1/health", handler.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body = %q, want it to contain %q", w.Body.String(), "healthy")
	}
}
