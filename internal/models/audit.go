package models

import "time"

type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogEntry is an append-only audit/request record. Entries are never
// updated or deleted individually; retention jobs purge them by age.
type LogEntry struct {
	ID        string
	Level     LogLevel
	Message   string
	UserID    *string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time

	// Username is populated by queries that join users.
	Username *string
}

// AnalyticsEvent is an append-only engagement or performance measurement.
type AnalyticsEvent struct {
	ID        string
	Event     string
	Category  string
	Label     string
	Value     *float64
	UserID    *string
	SessionID string
	IP        string
	UserAgent string
	URL       string
	Referrer  string
	Metadata  map[string]any
	CreatedAt time.Time
}
