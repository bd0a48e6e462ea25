package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/unwritten", func(c *gin.Context) {
		_ = c.Error(errors.New("database exploded"))
	})
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("model timeout"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate AI adjustment. Please try again."})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/unwritten", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate AI adjustment. Please try again."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "model timeout")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("any origin", func(t *testing.T) {
		router := gin.New()
		router.Use(middleware.CORS(nil))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://frontend.test")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "http://frontend.test", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("restricted origins", func(t *testing.T) {
		router := gin.New()
		router.Use(middleware.CORS([]string{"http://localhost:5173"}))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
