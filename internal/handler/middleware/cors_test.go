//go:build unit

package middleware_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"table-reservation/internal/handler/middleware"
	"table-reservation/internal/pkg/config"
	"table-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware_ExposesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        time.Hour,
	}))
	r.GET("/api/settings", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/api/settings", nil,
		map[string]string{"Origin": "http://localhost:3000"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	exposed := strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, "x-request-id")
	assert.Contains(t, exposed, "content-length")
}
