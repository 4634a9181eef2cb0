package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestJobTokenMiddleware(t *testing.T) {
	manager := NewJobTokenManager("job-secret-32-characters-long!!", 15*time.Minute)

	t.Run("allows request with a token scoped to the requested job", func(t *testing.T) {
		token, _ := manager.Generate("job-123")

		router := setupTestRouter()
		router.GET("/jobs/:id", JobTokenMiddleware(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"job_id": c.GetString("job_id")})
		})

		req, _ := http.NewRequest(http.MethodGet, "/jobs/job-123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects request without authorization header", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/jobs/:id", JobTokenMiddleware(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/jobs/job-123", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with non-Bearer prefix", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/jobs/:id", JobTokenMiddleware(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/jobs/job-123", nil)
		req.Header.Set("Authorization", "Basic sometoken")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with invalid token", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/jobs/:id", JobTokenMiddleware(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/jobs/job-123", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects request with expired token", func(t *testing.T) {
		expired := NewJobTokenManager("job-secret-32-characters-long!!", -1*time.Second)
		token, _ := expired.Generate("job-123")

		router := setupTestRouter()
		router.GET("/jobs/:id", JobTokenMiddleware(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/jobs/job-123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a token scoped to a different job id", func(t *testing.T) {
		token, _ := manager.Generate("job-other")

		router := setupTestRouter()
		router.GET("/jobs/:id", JobTokenMiddleware(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{})
		})

		req, _ := http.NewRequest(http.MethodGet, "/jobs/job-123", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
