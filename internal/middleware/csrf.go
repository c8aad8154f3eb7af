package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/security"
)

// CSRFFieldName is the form field carrying the anti-forgery token.
const CSRFFieldName = "_csrf"

// csrfExempt reports whether the guard skips this path entirely. The admin
// surface is a deliberate exception: it relies on the SameSite session
// cookie plus role gating instead of a form token.
func csrfExempt(path string) bool {
	return path == "/welcome" || strings.HasPrefix(path, "/admin")
}

// CSRF issues a per-session token, exposes it to views, and validates it on
// state-changing requests to non-exempt paths. Token generation failure
// degrades to an empty token; the request only fails when that empty token
// is submitted on the next state-changing request.
func CSRF(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if csrfExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		data := Session(c)
		if data == nil {
			abortWithError(c, apperr.CSRF())
			return
		}

		if data.CSRFToken == "" {
			token, err := security.GenerateCSRFToken()
			if err != nil {
				log.Error().Err(err).Msg("csrf token generation failed")
				token = ""
			}
			data.CSRFToken = token
		}
		c.Set(ctxKeyCSRFToken, data.CSRFToken)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(CSRFFieldName)
		if submitted == "" {
			submitted = c.GetHeader("X-CSRF-Token")
		}
		if !security.ValidCSRFToken(data.CSRFToken, submitted) {
			abortWithError(c, apperr.CSRF())
			return
		}

		c.Next()
	}
}
