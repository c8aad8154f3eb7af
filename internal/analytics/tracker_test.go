package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himselfzw/ingrid/internal/models"
)

type captureWriter struct {
	events []models.AnalyticsEvent
	err    error
}

func (w *captureWriter) Create(_ context.Context, event models.AnalyticsEvent) error {
	w.events = append(w.events, event)
	return w.err
}

func TestTrackEvent_FillsDefaults(t *testing.T) {
	writer := &captureWriter{}
	tracker := NewTracker(writer, zerolog.Nop())

	tracker.TrackEvent(context.Background(), models.AnalyticsEvent{Event: "page_view"})

	require.Len(t, writer.events, 1)
	event := writer.events[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "engagement", event.Category)
}

func TestTrack_BuildsEvent(t *testing.T) {
	writer := &captureWriter{}
	tracker := NewTracker(writer, zerolog.Nop())

	value := 1.0
	userID := "u1"
	tracker.Track(context.Background(), "view_product", "engagement", "Sulphuric Acid", &value, &userID, map[string]any{
		"productId": "p1",
	})

	require.Len(t, writer.events, 1)
	event := writer.events[0]
	assert.Equal(t, "view_product", event.Event)
	assert.Equal(t, "Sulphuric Acid", event.Label)
	require.NotNil(t, event.Value)
	assert.Equal(t, 1.0, *event.Value)
	require.NotNil(t, event.UserID)
	assert.Equal(t, "u1", *event.UserID)
	assert.Equal(t, "p1", event.Metadata["productId"])
}

func TestTrackEvent_WriterFailureNeverPropagates(t *testing.T) {
	writer := &captureWriter{err: errors.New("db unavailable")}
	tracker := NewTracker(writer, zerolog.Nop())

	assert.NotPanics(t, func() {
		tracker.TrackEvent(context.Background(), models.AnalyticsEvent{Event: "page_view"})
	})
}
