package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dietwise/backend/internal/types"
)

// SessionCookie is the cookie carrying the session credential
const SessionCookie = "session"

// UserIDKey is the gin context key holding the authenticated user ID
const UserIDKey = "user_id"

const claimsKey = "session_claims"

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates the session credential.
// The credential is read from the session cookie, falling back to a Bearer
// Authorization header.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
			c.Abort()
			return
		}

		// Store user info in context
		c.Set(UserIDKey, claims.UserID)
		c.Set("email", claims.Email)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// UserID returns the authenticated user ID set by AuthMiddleware
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// Claims returns the verified session claims set by AuthMiddleware, or nil
func Claims(c *gin.Context) *types.TokenClaims {
	claims, _ := c.Get(claimsKey)
	tc, _ := claims.(*types.TokenClaims)
	return tc
}
