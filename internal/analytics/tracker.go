package analytics

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/ids"
	"github.com/Himselfzw/ingrid/internal/models"
)

// EventWriter is the persistence contract for analytics events.
type EventWriter interface {
	Create(ctx context.Context, event models.AnalyticsEvent) error
}

// Tracker records engagement and performance events fire-and-forget.
// Persistence failures go to the diagnostic logger and never reach the
// triggering request.
type Tracker struct {
	writer EventWriter
	log    zerolog.Logger
}

func NewTracker(writer EventWriter, log zerolog.Logger) *Tracker {
	return &Tracker{writer: writer, log: log}
}

// TrackEvent stores an event, filling in id and category defaults.
func (t *Tracker) TrackEvent(ctx context.Context, event models.AnalyticsEvent) {
	if event.ID == "" {
		event.ID = ids.New()
	}
	if event.Category == "" {
		event.Category = "engagement"
	}
	if err := t.writer.Create(ctx, event); err != nil {
		t.log.Error().Err(err).
			Str("event", event.Event).
			Msg("analytics write failed")
	}
}

// Track is the free-function contract used by business routes to emit a
// named custom event with arbitrary metadata.
func (t *Tracker) Track(ctx context.Context, event, category, label string, value *float64, userID *string, metadata map[string]any) {
	t.TrackEvent(ctx, models.AnalyticsEvent{
		Event:    event,
		Category: category,
		Label:    label,
		Value:    value,
		UserID:   userID,
		Metadata: metadata,
	})
}
