package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent DDL for the check-in tables. The attendee flag
// columns are the durable source of truth for completion; the partial
// unique index below is a second line of defense for the single-kit rule
// on top of the conditional update in the attendee store.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS attendees (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL UNIQUE,
		category      TEXT NOT NULL,
		scan_code     TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		phone         TEXT NOT NULL,
		day1_entrance BOOLEAN NOT NULL DEFAULT FALSE,
		day1_lunch    BOOLEAN NOT NULL DEFAULT FALSE,
		day1_dinner   BOOLEAN NOT NULL DEFAULT FALSE,
		day1_kit      BOOLEAN NOT NULL DEFAULT FALSE,
		day2_entrance BOOLEAN NOT NULL DEFAULT FALSE,
		day2_lunch    BOOLEAN NOT NULL DEFAULT FALSE,
		day2_kit      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL,
		CONSTRAINT single_kit CHECK (NOT (day1_kit AND day2_kit))
	)`,
	`CREATE TABLE IF NOT EXISTS attendee_counters (
		category TEXT PRIMARY KEY,
		counter  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		id            BIGSERIAL PRIMARY KEY,
		attendee_id   UUID NOT NULL REFERENCES attendees(id),
		attendee_code TEXT NOT NULL,
		action        TEXT NOT NULL,
		day           SMALLINT NOT NULL,
		performed_by  TEXT NOT NULL,
		performed_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS activity_log_attendee_idx
		ON activity_log (attendee_id, performed_at DESC)`,
	`CREATE TABLE IF NOT EXISTS event_settings (
		id           SMALLINT PRIMARY KEY,
		day1_enabled BOOLEAN NOT NULL,
		day2_enabled BOOLEAN NOT NULL
	)`,
	`INSERT INTO event_settings (id, day1_enabled, day2_enabled)
		VALUES (1, TRUE, TRUE)
		ON CONFLICT (id) DO NOTHING`,
}

// EnsureSchema applies the DDL. Safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
