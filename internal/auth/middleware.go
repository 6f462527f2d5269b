package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyUsername is the gin context key carrying the acting username.
const ContextKeyUsername = "auth_username"

// GetUsername extracts the authenticated username from the gin context.
// Returns "" for unauthenticated requests.
func GetUsername(c *gin.Context) string {
	username, _ := c.Get(ContextKeyUsername)
	s, _ := username.(string)
	return s
}

// RequireAuth returns a middleware that rejects requests without a valid
// session. An unauthenticated request must never reach the repository layer,
// so this aborts before any handler runs.
func RequireAuth(sm *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := sm.GetUsername(c.Request)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextKeyUsername, username)
		c.Next()
	}
}
