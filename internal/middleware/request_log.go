package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/models"
)

// RequestLog writes one audit entry before the handler runs and a second
// after the response completes. Every request that reaches this middleware
// produces exactly two entries, whether or not the handler fails.
func RequestLog(recorder *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		userID := sessionUserID(c)
		requestURI := c.Request.URL.RequestURI()

		metadata := map[string]any{
			"url":    requestURI,
			"method": c.Request.Method,
		}
		if query := c.Request.URL.Query(); len(query) > 0 {
			metadata["query"] = query
		}

		recorder.Record(ctx, models.LogEntry{
			Level:     models.LogLevelInfo,
			Message:   fmt.Sprintf("%s %s", c.Request.Method, requestURI),
			UserID:    userID,
			Action:    strings.ToLower(c.Request.Method),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Metadata:  metadata,
		})

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		recorder.Record(ctx, models.LogEntry{
			Level:     models.LogLevelInfo,
			Message:   fmt.Sprintf("Response: %d in %dms", status, duration.Milliseconds()),
			UserID:    userID,
			Action:    "response",
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Metadata: map[string]any{
				"statusCode": status,
				"duration":   duration.Milliseconds(),
				"url":        requestURI,
			},
		})
	}
}
