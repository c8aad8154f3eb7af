package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		password_hash BYTEA NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		last_login    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price       DOUBLE PRECISION,
		category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
		image       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		content     TEXT NOT NULL,
		category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
		author      TEXT NOT NULL DEFAULT 'Admin',
		image       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS site_content (
		id              INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		hero_title      TEXT NOT NULL DEFAULT '',
		hero_subtitle   TEXT NOT NULL DEFAULT '',
		about_title     TEXT NOT NULL DEFAULT '',
		about_text1     TEXT NOT NULL DEFAULT '',
		about_text2     TEXT NOT NULL DEFAULT '',
		contact_address TEXT NOT NULL DEFAULT '',
		contact_phone   TEXT NOT NULL DEFAULT '',
		contact_email   TEXT NOT NULL DEFAULT '',
		contact_hours   TEXT NOT NULL DEFAULT '',
		updated_by      TEXT,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id         TEXT PRIMARY KEY,
		level      TEXT NOT NULL DEFAULT 'info',
		message    TEXT NOT NULL,
		user_id    TEXT,
		action     TEXT NOT NULL,
		ip         TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		metadata   JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_level ON logs (level)`,
	`CREATE TABLE IF NOT EXISTS analytics (
		id         TEXT PRIMARY KEY,
		event      TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT 'engagement',
		label      TEXT NOT NULL DEFAULT '',
		value      DOUBLE PRECISION,
		user_id    TEXT,
		session_id TEXT NOT NULL DEFAULT '',
		ip         TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		url        TEXT NOT NULL DEFAULT '',
		referrer   TEXT NOT NULL DEFAULT '',
		metadata   JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analytics_event_created ON analytics (event, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_analytics_session ON analytics (session_id)`,
}

// Migrate applies the schema. Every statement is idempotent so repeated
// startups are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
