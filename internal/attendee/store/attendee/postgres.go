package attendee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/platform/tx"
)

// Postgres persists attendees in the attendees table. Scan-code uniqueness
// comes from the unique index; ApplyAction is a conditional update so the
// check and the write are one atomic statement under concurrent stations.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// executor lets store methods run on either the pool or a transaction
// carried in context by the tx runner.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) conn(ctx context.Context) executor {
	if dbtx, ok := tx.From(ctx); ok {
		return dbtx
	}
	return s.db
}

const uniqueViolation = "23505"

const attendeeColumns = `id, code, category, scan_code, name, email, phone,
	day1_entrance, day1_lunch, day1_dinner, day1_kit,
	day2_entrance, day2_lunch, day2_kit, created_at`

// Create inserts a new attendee. A scan-code or code collision surfaces as
// sentinel.ErrAlreadyUsed; the unique index is the arbiter under
// concurrent registrations.
func (s *Postgres) Create(ctx context.Context, a *models.Attendee) error {
	const query = `
		INSERT INTO attendees (` + attendeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			FALSE, FALSE, FALSE, FALSE,
			FALSE, FALSE, FALSE, $8)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(a.ID), a.Code, string(a.Category), a.ScanCode,
		a.Profile.Name, a.Profile.Email, a.Profile.Phone, a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create attendee: %w: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *Postgres) FindByScanCode(ctx context.Context, scanCode string) (*models.Attendee, error) {
	const query = `SELECT ` + attendeeColumns + ` FROM attendees WHERE scan_code = $1`
	return s.scanOne(s.conn(ctx).QueryRowContext(ctx, query, scanCode))
}

func (s *Postgres) FindByID(ctx context.Context, id domain.AttendeeID) (*models.Attendee, error) {
	const query = `SELECT ` + attendeeColumns + ` FROM attendees WHERE id = $1`
	return s.scanOne(s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(id)))
}

// flagColumns whitelists the mutable flag columns. Query text is assembled
// from this map only, never from request input.
var flagColumns = map[string]string{
	domain.Slug(domain.ActionEntrance, domain.Day1): "day1_entrance",
	domain.Slug(domain.ActionLunch, domain.Day1):    "day1_lunch",
	domain.Slug(domain.ActionDinner, domain.Day1):   "day1_dinner",
	domain.Slug(domain.ActionKit, domain.Day1):      "day1_kit",
	domain.Slug(domain.ActionEntrance, domain.Day2): "day2_entrance",
	domain.Slug(domain.ActionLunch, domain.Day2):    "day2_lunch",
	domain.Slug(domain.ActionKit, domain.Day2):      "day2_kit",
}

// ApplyAction sets the completion flag for (action, day) with a conditional
// update: the WHERE clause re-checks the flag (and, for kit, both kit
// flags) inside the statement, so under concurrent stations exactly one
// update succeeds. Zero rows affected means another station won the race
// or the flag was already set; both surface as sentinel.ErrInvalidState.
func (s *Postgres) ApplyAction(ctx context.Context, id domain.AttendeeID, action domain.Action, day domain.Day) error {
	column, ok := flagColumns[domain.Slug(action, day)]
	if !ok {
		return sentinel.ErrInvalidState
	}

	query := fmt.Sprintf(`UPDATE attendees SET %s = TRUE WHERE id = $1 AND NOT %s`, column, column)
	if action == domain.ActionKit {
		query = fmt.Sprintf(`UPDATE attendees SET %s = TRUE WHERE id = $1 AND NOT day1_kit AND NOT day2_kit`, column)
	}

	res, err := s.conn(ctx).ExecContext(ctx, query, uuid.UUID(id))
	if err != nil {
		return fmt.Errorf("apply %s: %w: %v", domain.Slug(action, day), sentinel.ErrUnavailable, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply %s: %w: %v", domain.Slug(action, day), sentinel.ErrUnavailable, err)
	}
	if rows == 0 {
		if _, err := s.FindByID(ctx, id); errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrInvalidState
	}
	return nil
}

// Search matches name, email, phone, attendee code and scan code, newest
// registrations first.
func (s *Postgres) Search(ctx context.Context, query string, limit int) ([]*models.Attendee, error) {
	const q = `
		SELECT ` + attendeeColumns + ` FROM attendees
		WHERE $1 = ''
			OR name ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%'
			OR phone LIKE '%' || $1 || '%'
			OR code ILIKE '%' || $1 || '%'
			OR scan_code ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.conn(ctx).QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search attendees: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []*models.Attendee
	for rows.Next() {
		a, err := scanAttendee(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Summary recomputes the dashboard counts with one aggregate query plus a
// per-category group-by. Never materialized.
func (s *Postgres) Summary(ctx context.Context) (*models.Summary, error) {
	const totals = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE day1_entrance),
			COUNT(*) FILTER (WHERE day1_lunch),
			COUNT(*) FILTER (WHERE day1_dinner),
			COUNT(*) FILTER (WHERE day2_entrance),
			COUNT(*) FILTER (WHERE day2_lunch),
			COUNT(*) FILTER (WHERE day1_kit OR day2_kit)
		FROM attendees
	`
	sum := &models.Summary{ByCategory: make(map[domain.Category]int)}
	err := s.conn(ctx).QueryRowContext(ctx, totals).Scan(
		&sum.Total,
		&sum.Day1Entrance, &sum.Day1Lunch, &sum.Day1Dinner,
		&sum.Day2Entrance, &sum.Day2Lunch,
		&sum.KitsIssued,
	)
	if err != nil {
		return nil, fmt.Errorf("summary totals: %w: %v", sentinel.ErrUnavailable, err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT category, COUNT(*) FROM attendees GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("summary categories: %w: %v", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("summary categories: %w", err)
		}
		sum.ByCategory[domain.Category(cat)] = n
	}
	return sum, rows.Err()
}

func (s *Postgres) scanOne(row *sql.Row) (*models.Attendee, error) {
	a, err := scanAttendee(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find attendee: %w: %v", sentinel.ErrUnavailable, err)
	}
	return a, nil
}

func scanAttendee(scan func(dest ...any) error) (*models.Attendee, error) {
	var a models.Attendee
	var id uuid.UUID
	var category string
	err := scan(
		&id, &a.Code, &category, &a.ScanCode,
		&a.Profile.Name, &a.Profile.Email, &a.Profile.Phone,
		&a.Flags.Day1.Entrance, &a.Flags.Day1.Lunch, &a.Flags.Day1.Dinner, &a.Flags.Day1.Kit,
		&a.Flags.Day2.Entrance, &a.Flags.Day2.Lunch, &a.Flags.Day2.Kit,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ID = domain.AttendeeID(id)
	a.Category = domain.Category(category)
	return &a, nil
}
