package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/analytics"
	"github.com/Himselfzw/ingrid/internal/models"
)

func analyticsExcluded(path string) bool {
	return strings.HasPrefix(path, "/admin") || strings.HasPrefix(path, "/api")
}

// PageTracker records a page_view event for public GET requests before the
// handler runs and a page_response performance event once the response is
// complete, keyed by the session's analytics identifier.
func PageTracker(tracker *analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		path := c.Request.URL.Path
		requestURI := c.Request.URL.RequestURI()
		userID := sessionUserID(c)

		var sessionID string
		if data := Session(c); data != nil {
			sessionID = data.AnalyticsID
		}

		if c.Request.Method == http.MethodGet && !analyticsExcluded(path) {
			one := 1.0
			tracker.TrackEvent(ctx, models.AnalyticsEvent{
				Event:     "page_view",
				Category:  "engagement",
				Label:     path,
				Value:     &one,
				UserID:    userID,
				SessionID: sessionID,
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				URL:       requestURI,
				Referrer:  c.Request.Referer(),
				Metadata: map[string]any{
					"method": c.Request.Method,
				},
			})
		}

		c.Next()

		durationMillis := float64(time.Since(start).Milliseconds())
		tracker.TrackEvent(ctx, models.AnalyticsEvent{
			Event:     "page_response",
			Category:  "performance",
			Label:     path,
			Value:     &durationMillis,
			UserID:    userID,
			SessionID: sessionID,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			URL:       requestURI,
			Metadata: map[string]any{
				"statusCode": c.Writer.Status(),
				"duration":   durationMillis,
				"method":     c.Request.Method,
			},
		})
	}
}
