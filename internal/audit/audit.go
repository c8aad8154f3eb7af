package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/ids"
	"github.com/Himselfzw/ingrid/internal/models"
)

// Sink is the persistence contract for audit log entries.
type Sink interface {
	Record(ctx context.Context, entry models.LogEntry) error
}

// Recorder writes audit entries through a Sink and never fails the caller:
// sink errors are reported to the diagnostic logger only. This isolation is
// a hard invariant of the audit pipeline.
type Recorder struct {
	sink Sink
	log  zerolog.Logger
}

func NewRecorder(sink Sink, log zerolog.Logger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

func (r *Recorder) Record(ctx context.Context, entry models.LogEntry) {
	if entry.ID == "" {
		entry.ID = ids.New()
	}
	if entry.Level == "" {
		entry.Level = models.LogLevelInfo
	}
	if err := r.sink.Record(ctx, entry); err != nil {
		r.log.Error().Err(err).
			Str("action", entry.Action).
			Msg("audit write failed")
	}
}
