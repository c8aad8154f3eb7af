package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/models"
)

// UserResolver looks up the identity behind a session's user id. Guards
// re-resolve on every request so role and active-status changes take
// effect immediately.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

const loginPath = "/admin/login"

// resolveUser maps session.UserID to a live, active identity. A stale id
// or a deactivated account resolves to nothing, and the session's user
// binding is dropped so the client is treated as anonymous.
func resolveUser(c *gin.Context, users UserResolver) (models.User, bool) {
	data := Session(c)
	if data == nil || data.UserID == "" {
		return models.User{}, false
	}

	user, err := users.GetByID(c.Request.Context(), data.UserID)
	if err != nil || !user.IsActive {
		data.UserID = ""
		return models.User{}, false
	}
	return user, true
}

// RequireAuth passes any resolved identity regardless of role.
func RequireAuth(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, users)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(ctxKeyCurrentUser, user)
		c.Next()
	}
}

// RequireAdmin passes admin and superadmin. Authenticated users without an
// admin role are denied; anonymous requests are sent to the login page.
func RequireAdmin(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, users)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			abortWithError(c, apperr.Authorization("Access denied. Admin role required."))
			return
		}

		c.Set(ctxKeyCurrentUser, user)
		c.Next()
	}
}

// RequireSuperAdmin passes only the superadmin role; admins are denied.
func RequireSuperAdmin(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, users)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		if user.Role != models.UserRoleSuperAdmin {
			abortWithError(c, apperr.Authorization("Access denied. Super Admin role required."))
			return
		}

		c.Set(ctxKeyCurrentUser, user)
		c.Next()
	}
}
