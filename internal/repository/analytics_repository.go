package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Himselfzw/ingrid/internal/models"
)

// AnalyticsRepository persists append-only engagement and performance
// events and serves the aggregate queries behind the admin analytics view.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

func (r *AnalyticsRepository) Create(ctx context.Context, event models.AnalyticsEvent) error {
	const query = `
		INSERT INTO analytics (
			id, event, category, label, value, user_id, session_id, ip, user_agent, url, referrer, metadata, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW()
		)
	`
	var metadata []byte
	if event.Metadata != nil {
		var err error
		metadata, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Event,
		event.Category,
		event.Label,
		event.Value,
		event.UserID,
		event.SessionID,
		event.IP,
		event.UserAgent,
		event.URL,
		event.Referrer,
		metadata,
	)
	return err
}

func (r *AnalyticsRepository) CountEvent(ctx context.Context, event string, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM analytics WHERE event = $1 AND created_at >= $2`
	var count int
	if err := r.pool.QueryRow(ctx, query, event, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// AvgSessionDuration averages page_response times per session (sessions
// with at least two pages), returning seconds. Single-page sessions carry
// no engagement signal and are excluded.
func (r *AnalyticsRepository) AvgSessionDuration(ctx context.Context, since time.Time) (int, error) {
	const query = `
		SELECT COALESCE(AVG(avg_duration), 0)
		FROM (
			SELECT session_id, AVG(value) AS avg_duration
			FROM analytics
			WHERE event = 'page_response' AND created_at >= $1
			GROUP BY session_id
			HAVING COUNT(*) >= 2
		) sessions
	`
	var avgMillis float64
	if err := r.pool.QueryRow(ctx, query, since).Scan(&avgMillis); err != nil {
		return 0, err
	}
	return int(avgMillis / 1000), nil
}

type PageCount struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

func (r *AnalyticsRepository) TopPages(ctx context.Context, since time.Time, limit int) ([]PageCount, error) {
	const query = `
		SELECT url, COUNT(*)
		FROM analytics
		WHERE event = 'page_view' AND created_at >= $1
		GROUP BY url
		ORDER BY COUNT(*) DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []PageCount
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.URL, &pc.Count); err != nil {
			return nil, err
		}
		pages = append(pages, pc)
	}
	return pages, rows.Err()
}

type SessionPath struct {
	SessionID string   `json:"sessionId"`
	Pages     []string `json:"pages"`
	Count     int      `json:"count"`
}

// UserPaths returns the page sequences of recent multi-page sessions,
// busiest sessions first.
func (r *AnalyticsRepository) UserPaths(ctx context.Context, since time.Time, limit int) ([]SessionPath, error) {
	const query = `
		SELECT session_id, ARRAY_AGG(url ORDER BY created_at), COUNT(*)
		FROM analytics
		WHERE event = 'page_view' AND created_at >= $1
		GROUP BY session_id
		HAVING COUNT(*) >= 2
		ORDER BY COUNT(*) DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []SessionPath
	for rows.Next() {
		var sp SessionPath
		if err := rows.Scan(&sp.SessionID, &sp.Pages, &sp.Count); err != nil {
			return nil, err
		}
		paths = append(paths, sp)
	}
	return paths, rows.Err()
}

func (r *AnalyticsRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM analytics WHERE created_at < $1`
	cmd, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
