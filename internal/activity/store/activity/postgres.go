package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gatepass/internal/activity/models"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/platform/tx"
)

// Postgres persists records in the activity_log table. Append participates
// in the caller's transaction when one is carried in context, which is how
// the flag update and the log entry commit or fail as a unit.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Postgres) conn(ctx context.Context) executor {
	if dbtx, ok := tx.From(ctx); ok {
		return dbtx
	}
	return s.db
}

func (s *Postgres) Append(ctx context.Context, rec models.Record) error {
	const query = `
		INSERT INTO activity_log (attendee_id, attendee_code, action, day, performed_by, performed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(rec.AttendeeID), rec.AttendeeCode, string(rec.Action), int(rec.Day),
		rec.PerformedBy, rec.PerformedAt,
	)
	if err != nil {
		return fmt.Errorf("append activity: %w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Postgres) Recent(ctx context.Context, limit int) ([]models.Record, error) {
	const query = `
		SELECT attendee_id, attendee_code, action, day, performed_by, performed_at
		FROM activity_log
		ORDER BY performed_at DESC, id DESC
		LIMIT $1
	`
	return s.query(ctx, query, limit)
}

func (s *Postgres) RecentFor(ctx context.Context, id domain.AttendeeID, limit int) ([]models.Record, error) {
	const query = `
		SELECT attendee_id, attendee_code, action, day, performed_by, performed_at
		FROM activity_log
		WHERE attendee_id = $1
		ORDER BY performed_at DESC, id DESC
		LIMIT $2
	`
	return s.query(ctx, query, uuid.UUID(id), limit)
}

func (s *Postgres) query(ctx context.Context, query string, args ...any) ([]models.Record, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []models.Record
	for rows.Next() {
		var rec models.Record
		var id uuid.UUID
		var action string
		var day int
		if err := rows.Scan(&id, &rec.AttendeeCode, &action, &day, &rec.PerformedBy, &rec.PerformedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		rec.AttendeeID = domain.AttendeeID(id)
		rec.Action = domain.Action(action)
		rec.Day = domain.Day(day)
		out = append(out, rec)
	}
	return out, rows.Err()
}
