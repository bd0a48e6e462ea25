package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/internal/middleware"
)

// SessionHandler lets the frontend check whether its session is still valid.
// Sessions are issued elsewhere.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.POST("/check_session", auth, h.CheckSession)
}

func (h *SessionHandler) CheckSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "content_served", "claims": middleware.Claims(c)})
}
