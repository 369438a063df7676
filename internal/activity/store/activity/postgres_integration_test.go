//go:build integration

package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/activity/models"
	activitystore "gatepass/internal/activity/store/activity"
	attendeemodels "gatepass/internal/attendee/models"
	attendeestore "gatepass/internal/attendee/store/attendee"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/tx"
	"gatepass/pkg/testutil/containers"
)

type ActivityStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	store     *activitystore.Postgres
	attendees *attendeestore.Postgres
	runner    *tx.SQLRunner
}

func TestActivityStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ActivityStoreSuite))
}

func (s *ActivityStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = activitystore.NewPostgres(s.postgres.DB)
	s.attendees = attendeestore.NewPostgres(s.postgres.DB)
	s.runner = tx.NewSQLRunner(s.postgres.DB)
}

func (s *ActivityStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "activity_log", "attendees")
	s.Require().NoError(err)
}

func (s *ActivityStoreSuite) createAttendee(code, scanCode string) *attendeemodels.Attendee {
	a, err := attendeemodels.NewAttendee(
		domain.NewAttendeeID(), code, domain.CategoryAlumni, scanCode,
		attendeemodels.Profile{Name: "Holder of " + code}, time.Now().UTC(),
	)
	s.Require().NoError(err)
	s.Require().NoError(s.attendees.Create(context.Background(), a))
	return a
}

func (s *ActivityStoreSuite) record(a *attendeemodels.Attendee, action domain.Action, at time.Time) models.Record {
	return models.Record{
		AttendeeID:   a.ID,
		AttendeeCode: a.Code,
		Action:       action,
		Day:          domain.Day1,
		PerformedBy:  "station-1",
		PerformedAt:  at,
	}
}

func (s *ActivityStoreSuite) TestAppendAndRecent() {
	ctx := context.Background()
	a := s.createAttendee("AL-001", "scan-1")
	base := time.Now().UTC().Truncate(time.Millisecond)

	s.Require().NoError(s.store.Append(ctx, s.record(a, domain.ActionEntrance, base)))
	s.Require().NoError(s.store.Append(ctx, s.record(a, domain.ActionLunch, base.Add(time.Minute))))

	out, err := s.store.Recent(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal(domain.ActionLunch, out[0].Action, "newest first")
	s.Equal("station-1", out[0].PerformedBy)

	forA, err := s.store.RecentFor(ctx, a.ID, 1)
	s.Require().NoError(err)
	s.Require().Len(forA, 1)
	s.Equal(domain.ActionLunch, forA[0].Action)
}

// TestAppendJoinsCallerTransaction verifies that a failing step after the
// append rolls the record back, keeping the flag update and the log entry
// one atomic unit.
func (s *ActivityStoreSuite) TestAppendJoinsCallerTransaction() {
	ctx := context.Background()
	a := s.createAttendee("AL-001", "scan-1")

	sentinelErr := errors.New("boom")
	err := s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.attendees.ApplyAction(txCtx, a.ID, domain.ActionEntrance, domain.Day1); err != nil {
			return err
		}
		if err := s.store.Append(txCtx, s.record(a, domain.ActionEntrance, time.Now().UTC())); err != nil {
			return err
		}
		return sentinelErr
	})
	s.Require().ErrorIs(err, sentinelErr)

	out, err := s.store.Recent(ctx, 10)
	s.Require().NoError(err)
	s.Empty(out, "append rolled back")

	stored, err := s.attendees.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.False(stored.Flags.Day1.Entrance, "flag update rolled back")
}

func (s *ActivityStoreSuite) TestCommittedTransactionPersistsBoth() {
	ctx := context.Background()
	a := s.createAttendee("AL-001", "scan-1")

	err := s.runner.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.attendees.ApplyAction(txCtx, a.ID, domain.ActionKit, domain.Day1); err != nil {
			return err
		}
		return s.store.Append(txCtx, s.record(a, domain.ActionKit, time.Now().UTC()))
	})
	s.Require().NoError(err)

	out, err := s.store.RecentFor(ctx, a.ID, 10)
	s.Require().NoError(err)
	s.Len(out, 1)

	stored, err := s.attendees.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.True(stored.Flags.Day1.Kit)
}
