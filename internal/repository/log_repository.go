package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Himselfzw/ingrid/internal/models"
)

// LogRepository persists append-only audit entries. Rows are never updated;
// PurgeBefore is the only deletion path.
type LogRepository struct {
	pool *pgxpool.Pool
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

func (r *LogRepository) Create(ctx context.Context, entry models.LogEntry) error {
	const query = `
		INSERT INTO logs (id, level, message, user_id, action, ip, user_agent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Level,
		entry.Message,
		entry.UserID,
		entry.Action,
		entry.IP,
		entry.UserAgent,
		metadata,
	)
	return err
}

// List returns a page of entries, newest first, filtered by level (empty
// means all) and message substring, with the total match count.
func (r *LogRepository) List(ctx context.Context, level models.LogLevel, search string, limit, offset int) ([]models.LogEntry, int, error) {
	const query = `
		SELECT l.id, l.level, l.message, l.user_id, l.action, l.ip, l.user_agent, l.metadata, l.created_at, u.username
		FROM logs l LEFT JOIN users u ON u.id = l.user_id
		WHERE ($1 = '' OR l.level = $1)
		  AND ($2 = '' OR l.message ILIKE '%' || $2 || '%')
		ORDER BY l.created_at DESC
		LIMIT NULLIF($3, 0) OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, string(level), search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		var metadata []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.Level,
			&entry.Message,
			&entry.UserID,
			&entry.Action,
			&entry.IP,
			&entry.UserAgent,
			&metadata,
			&entry.CreatedAt,
			&entry.Username,
		); err != nil {
			return nil, 0, err
		}
		if len(metadata) > 0 {
			_ = json.Unmarshal(metadata, &entry.Metadata)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const countQuery = `
		SELECT COUNT(*) FROM logs
		WHERE ($1 = '' OR level = $1) AND ($2 = '' OR message ILIKE '%' || $2 || '%')
	`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, string(level), search).Scan(&total); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *LogRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM logs WHERE created_at < $1`
	cmd, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
