package audit

import (
	"context"

	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/repository"
)

// PostgresSink stores audit entries in the logs table.
type PostgresSink struct {
	logs *repository.LogRepository
}

func NewPostgresSink(logs *repository.LogRepository) *PostgresSink {
	return &PostgresSink{logs: logs}
}

func (s *PostgresSink) Record(ctx context.Context, entry models.LogEntry) error {
	return s.logs.Create(ctx, entry)
}
