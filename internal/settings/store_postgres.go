package settings

import (
	"context"
	"database/sql"
	"fmt"

	"gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// PostgresStore persists the window as the singleton event_settings row,
// seeded by the schema. Updates return the resulting window so the caller
// never needs a second read.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context) (Window, error) {
	var w Window
	err := s.db.QueryRowContext(ctx,
		`SELECT day1_enabled, day2_enabled FROM event_settings WHERE id = 1`,
	).Scan(&w.Day1Enabled, &w.Day2Enabled)
	if err != nil {
		return Window{}, fmt.Errorf("get event window: %w: %v", sentinel.ErrUnavailable, err)
	}
	return w, nil
}

func (s *PostgresStore) SetDay(ctx context.Context, day domain.Day, enabled bool) (Window, error) {
	column := "day1_enabled"
	if day == domain.Day2 {
		column = "day2_enabled"
	}
	var w Window
	query := fmt.Sprintf(
		`UPDATE event_settings SET %s = $1 WHERE id = 1 RETURNING day1_enabled, day2_enabled`, column)
	if err := s.db.QueryRowContext(ctx, query, enabled).Scan(&w.Day1Enabled, &w.Day2Enabled); err != nil {
		return Window{}, fmt.Errorf("set event window: %w: %v", sentinel.ErrUnavailable, err)
	}
	return w, nil
}
