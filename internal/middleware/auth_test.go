package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/internal/middleware"
	"github.com/pageza/dietwise/backend/internal/mocks"
	"github.com/pageza/dietwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter(validator middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/me", middleware.AuthMiddleware(validator), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.UserID(c)})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*http.Request, *mocks.MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing credential",
			setup:      func(*http.Request, *mocks.MockAuthService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name: "session cookie",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "cookie-token"})
				m.On("ValidateToken", "cookie-token").Return(&types.TokenClaims{UserID: "u1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"u1"}`,
		},
		{
			name: "bearer header",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Bearer header-token")
				m.On("ValidateToken", "header-token").Return(&types.TokenClaims{UserID: "u2"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":"u2"}`,
		},
		{
			name: "malformed header",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.Header.Set("Authorization", "Token abc")
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name: "expired session",
			setup: func(r *http.Request, m *mocks.MockAuthService) {
				r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "old"})
				m.On("ValidateToken", "old").Return(nil, errors.New("token is expired"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Session expired or invalid"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(mocks.MockAuthService)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req, validator)

			w := httptest.NewRecorder()
			newAuthRouter(validator).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			validator.AssertExpectations(t)
		})
	}
}

func TestJobToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(token string) *gin.Engine {
		router := gin.New()
		router.POST("/jobs", middleware.JobToken(token), func(c *gin.Context) {
			c.Status(http.StatusAccepted)
		})
		return router
	}

	t.Run("open when unset", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("").ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/jobs", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set(middleware.JobTokenHeader, "nope")
		w := httptest.NewRecorder()
		newRouter("secret").ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set(middleware.JobTokenHeader, "secret")
		w := httptest.NewRecorder()
		newRouter("secret").ServeHTTP(w, req)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}
