package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himselfzw/ingrid/internal/analytics"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/session"
)

type captureWriter struct {
	events []models.AnalyticsEvent
}

func (w *captureWriter) Create(_ context.Context, event models.AnalyticsEvent) error {
	w.events = append(w.events, event)
	return nil
}

func (w *captureWriter) names() []string {
	var names []string
	for _, event := range w.events {
		names = append(names, event.Event)
	}
	return names
}

func trackerEngine(writer *captureWriter) *gin.Engine {
	engine := gin.New()
	engine.Use(
		injectSession(&session.Data{AnalyticsID: "sess_abc"}),
		PageTracker(analytics.NewTracker(writer, zerolog.Nop())),
	)
	engine.GET("/products", okHandler)
	engine.POST("/contact", okHandler)
	engine.GET("/admin/dashboard", okHandler)
	engine.GET("/api/status", okHandler)
	return engine
}

func TestPageTracker_PublicGetRecordsViewAndResponse(t *testing.T) {
	writer := &captureWriter{}
	engine := trackerEngine(writer)

	perform(engine, http.MethodGet, "/products")

	require.Equal(t, []string{"page_view", "page_response"}, writer.names())

	view := writer.events[0]
	assert.Equal(t, "engagement", view.Category)
	assert.Equal(t, "/products", view.Label)
	assert.Equal(t, "sess_abc", view.SessionID)
	require.NotNil(t, view.Value)
	assert.Equal(t, 1.0, *view.Value)

	response := writer.events[1]
	assert.Equal(t, "performance", response.Category)
	assert.Equal(t, 200, response.Metadata["statusCode"])
}

func TestPageTracker_PostSkipsPageView(t *testing.T) {
	writer := &captureWriter{}
	engine := trackerEngine(writer)

	perform(engine, http.MethodPost, "/contact")

	assert.Equal(t, []string{"page_response"}, writer.names())
}

func TestPageTracker_ExcludedPrefixes(t *testing.T) {
	writer := &captureWriter{}
	engine := trackerEngine(writer)

	perform(engine, http.MethodGet, "/admin/dashboard")
	perform(engine, http.MethodGet, "/api/status")

	// Responses are still measured; only page views are excluded.
	assert.Equal(t, []string{"page_response", "page_response"}, writer.names())
}
