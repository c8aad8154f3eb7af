package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/repository"
)

// classify maps heterogeneous failures onto the closed error taxonomy.
func classify(c *gin.Context, err error) *apperr.Error {
	if isNotFound(err) {
		return apperr.NotFound(err.Error())
	}

	var dup *repository.DuplicateError
	if errors.As(err, &dup) {
		return apperr.Validation(dup.Error())
	}

	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindCSRF && strings.HasPrefix(c.Request.URL.Path, "/admin") {
		// Admin routes skip the CSRF guard entirely; a token failure
		// surfacing here means the request fell outside the gated
		// surface, so treat it as an access problem.
		return apperr.Authorization("Access denied")
	}
	return appErr
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		repository.ErrUserNotFound,
		repository.ErrProductNotFound,
		repository.ErrPostNotFound,
		repository.ErrCategoryNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ErrorBoundary is the single place unhandled handler failures become
// responses. Operational failures are written to the audit log with the
// request context; unclassified ones respond with a generic message and
// never leak detail in production.
func ErrorBoundary(recorder *audit.Recorder, log zerolog.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		appErr := classify(c, err)

		log.Error().Err(err).
			Str("kind", string(appErr.Kind)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")

		if appErr.Operational() {
			recorder.Record(c.Request.Context(), models.LogEntry{
				Level:     models.LogLevelError,
				Message:   fmt.Sprintf("%s: %s", appErr.Kind, appErr.Message),
				UserID:    sessionUserID(c),
				Action:    "error",
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				Metadata: map[string]any{
					"url":    c.Request.URL.RequestURI(),
					"method": c.Request.Method,
					"error":  err.Error(),
				},
			})
		}

		if c.Writer.Written() {
			return
		}

		payload := gin.H{"message": appErr.Message}
		if !production {
			payload["stack"] = err.Error()
		}
		c.JSON(appErr.StatusCode(), gin.H{
			"success": false,
			"error":   payload,
		})
	}
}
