package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/session"
)

const (
	ctxKeySessionID        = "session_id"
	ctxKeySessionData      = "session_data"
	ctxKeySessionDestroyed = "session_destroyed"
	ctxKeyCurrentUser      = "current_user"
	ctxKeyCSRFToken        = "csrf_token"
)

// Session returns the request's session state. Mutations are persisted by
// the session middleware after the handler returns.
func Session(c *gin.Context) *session.Data {
	val, ok := c.Get(ctxKeySessionData)
	if !ok {
		return nil
	}
	data, _ := val.(*session.Data)
	return data
}

// SessionID returns the opaque cookie-carried session identifier.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}

// DestroySession marks the session for deletion instead of re-save.
func DestroySession(c *gin.Context) {
	c.Set(ctxKeySessionDestroyed, true)
}

// CurrentUser returns the identity resolved by an auth guard, if any.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, ok := c.Get(ctxKeyCurrentUser)
	if !ok {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// CSRFToken returns the per-session anti-forgery token exposed to views.
// Empty when the guard is not active on this path.
func CSRFToken(c *gin.Context) string {
	return c.GetString(ctxKeyCSRFToken)
}

func sessionUserID(c *gin.Context) *string {
	if data := Session(c); data != nil && data.UserID != "" {
		id := data.UserID
		return &id
	}
	return nil
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
