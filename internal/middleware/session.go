package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/ids"
	"github.com/Himselfzw/ingrid/internal/session"
)

// SessionLoader resolves the session cookie to server-held state, creating
// a fresh session (with a new analytics identifier) when the cookie is
// absent or no longer resolves. State is written back after the handler
// unless the request destroyed the session.
func SessionLoader(store session.Store, cfg config.SessionConfig, secure bool, log zerolog.Logger) gin.HandlerFunc {
	maxAge := int(cfg.TTL.Seconds())

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := c.Cookie(cfg.CookieName)
		var data session.Data
		if err == nil && id != "" {
			data, err = store.Get(ctx, id)
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				log.Error().Err(err).Msg("session load failed")
			}
		}
		if err != nil || id == "" {
			id = ids.New()
			data = session.Data{}
		}
		if data.AnalyticsID == "" {
			data.AnalyticsID = "sess_" + ids.New()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, id, maxAge, "/", "", secure, true)

		c.Set(ctxKeySessionID, id)
		c.Set(ctxKeySessionData, &data)

		c.Next()

		if c.GetBool(ctxKeySessionDestroyed) {
			if err := store.Delete(ctx, id); err != nil {
				log.Error().Err(err).Msg("session destroy failed")
			}
			c.SetCookie(cfg.CookieName, "", -1, "/", "", secure, true)
			return
		}
		if err := store.Save(ctx, id, data); err != nil {
			log.Error().Err(err).Msg("session save failed")
		}
	}
}
