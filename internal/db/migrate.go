package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS practice_sessions (
		id           TEXT PRIMARY KEY,
		profile_json TEXT NOT NULL,
		topic        TEXT NOT NULL DEFAULT '',
		stage        TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('active','completed','abandoned')),
		feedback     TEXT NOT NULL DEFAULT '',
		started_at   TEXT NOT NULL,
		ended_at     TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_practice_sessions_started ON practice_sessions(started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_sessions_status ON practice_sessions(status)`,

	`CREATE TABLE IF NOT EXISTS turns (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES practice_sessions(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL CHECK(seq > 0),
		speaker    TEXT NOT NULL CHECK(speaker IN ('clinician','patient')),
		text       TEXT NOT NULL,
		intent     TEXT NOT NULL DEFAULT '',
		source     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE(session_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id)`,

	`CREATE TABLE IF NOT EXISTS subscription (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		tier       TEXT NOT NULL DEFAULT 'free' CHECK(tier IN ('free','premium')),
		updated_at TEXT NOT NULL DEFAULT ''
	)`,

	// Seed the single local subscription row.
	`INSERT OR IGNORE INTO subscription (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS settings (
		id                  TEXT PRIMARY KEY DEFAULT 'default',
		onboarding_complete INTEGER NOT NULL DEFAULT 0,
		default_topic       TEXT NOT NULL DEFAULT '',
		default_difficulty  TEXT NOT NULL DEFAULT ''
	)`,

	`INSERT OR IGNORE INTO settings (id) VALUES ('default')`,

	// Catalog version the session's profile was drawn from.
	`ALTER TABLE practice_sessions ADD COLUMN catalog_version TEXT NOT NULL DEFAULT ''`,

	// Deleted sessions keep a tombstone so they still count toward quota.
	`ALTER TABLE practice_sessions ADD COLUMN deleted_at TEXT`,
}
