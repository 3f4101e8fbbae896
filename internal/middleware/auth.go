package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pasta_admin/internal/models"
	"pasta_admin/internal/services"
)

// SessionCookie is the opaque session id cookie. HttpOnly and
// SameSite=Strict; Secure is flipped on by config in production.
const SessionCookie = "pasta_session"

const userKey = "currentUser"

// LoadUser resolves the session cookie to a user on every request and
// stashes it in the gin context. Anonymous requests pass through; the
// Require* gates below decide what is allowed.
func LoadUser(authSvc services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID, err := c.Cookie(SessionCookie); err == nil {
			if user := authSvc.CurrentUser(c.Request.Context(), sessionID); user != nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// requireRole aborts with 401 for anonymous requests and 403 for
// authenticated ones that fail the predicate.
func requireRole(allowed func(*models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !allowed(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

func RequireAuthenticated() gin.HandlerFunc {
	return requireRole(services.IsAuthenticated)
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole(services.IsAdmin)
}

func RequireSuperAdmin() gin.HandlerFunc {
	return requireRole(services.IsSuperAdmin)
}
