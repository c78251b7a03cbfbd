// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType is "sqlite" or
// "postgres". For sqlite the DSN is augmented with the pragmas the vote
// upsert path depends on: foreign_keys for referential integrity and
// busy_timeout so concurrent writers queue instead of failing.
func Open(dbType, dsn string) (*sql.DB, error) {
	switch dbType {
	case "sqlite":
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		return sql.Open("sqlite", dsn)
	case "postgres":
		return sql.Open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	ddl := sqliteSchema
	if dbType == "postgres" {
		ddl = postgresSchema
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const sqliteSchema = `
-- Meetings
CREATE TABLE IF NOT EXISTS meetings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    channel_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Options
CREATE TABLE IF NOT EXISTS options (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    meeting_id INTEGER NOT NULL REFERENCES meetings(id),
    text TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_options_meeting_id ON options(meeting_id);

-- Votes: one row per (option, responder), upserted on conflict
CREATE TABLE IF NOT EXISTS votes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    option_id INTEGER NOT NULL REFERENCES options(id),
    user_id TEXT NOT NULL,
    user_name TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('accept', 'decline')),
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (option_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_option_id ON votes(option_id);

-- Final selection: at most one per meeting
CREATE TABLE IF NOT EXISTS final_selection (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    meeting_id INTEGER NOT NULL UNIQUE REFERENCES meetings(id),
    option_id INTEGER NOT NULL REFERENCES options(id),
    decided_at TIMESTAMP NOT NULL
);
`

const postgresSchema = `
-- Meetings
CREATE TABLE IF NOT EXISTS meetings (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    channel_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Options
CREATE TABLE IF NOT EXISTS options (
    id BIGSERIAL PRIMARY KEY,
    meeting_id BIGINT NOT NULL REFERENCES meetings(id),
    text TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_options_meeting_id ON options(meeting_id);

-- Votes: one row per (option, responder), upserted on conflict
CREATE TABLE IF NOT EXISTS votes (
    id BIGSERIAL PRIMARY KEY,
    option_id BIGINT NOT NULL REFERENCES options(id),
    user_id TEXT NOT NULL,
    user_name TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('accept', 'decline')),
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (option_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_option_id ON votes(option_id);

-- Final selection: at most one per meeting
CREATE TABLE IF NOT EXISTS final_selection (
    id BIGSERIAL PRIMARY KEY,
    meeting_id BIGINT NOT NULL UNIQUE REFERENCES meetings(id),
    option_id BIGINT NOT NULL REFERENCES options(id),
    decided_at TIMESTAMP NOT NULL
);
`
