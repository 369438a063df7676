package counter

import (
	"context"
	"database/sql"
	"fmt"

	"gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// Postgres persists counters in the attendee_counters table. The upsert
// below is a single-statement atomic read-modify-write: under any number of
// concurrent callers the row lock serializes increments, so no two callers
// ever receive the same value. A read-then-write across two statements
// would race and is deliberately not used here.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Next increments and returns the counter for a category.
func (s *Postgres) Next(ctx context.Context, category domain.Category) (int64, error) {
	const query = `
		INSERT INTO attendee_counters (category, counter)
		VALUES ($1, 1)
		ON CONFLICT (category) DO UPDATE SET
			counter = attendee_counters.counter + 1
		RETURNING counter
	`
	var n int64
	if err := s.db.QueryRowContext(ctx, query, string(category)).Scan(&n); err != nil {
		return 0, fmt.Errorf("next counter for %s: %w", category, errUnavailable(err))
	}
	return n, nil
}

func errUnavailable(err error) error {
	return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
}
