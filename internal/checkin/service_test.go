package checkin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	activitystore "gatepass/internal/activity/store/activity"
	"gatepass/internal/attendee/models"
	attendeestore "gatepass/internal/attendee/store/attendee"
	"gatepass/internal/checkin/suppression"
	"gatepass/internal/settings"
	"gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/tx"
	"gatepass/pkg/requestcontext"
)

type CheckinServiceSuite struct {
	suite.Suite
	attendees *attendeestore.InMemory
	activity  *activitystore.InMemory
	window    *settings.Service
	supp      *suppression.InMemory
	service   *Service
	base      time.Time
}

func TestCheckinServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckinServiceSuite))
}

func (s *CheckinServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.attendees = attendeestore.NewInMemory()
	s.activity = activitystore.NewInMemory()
	s.window = settings.NewService(settings.NewInMemoryStore(), logger)
	s.supp = suppression.NewInMemory(10 * time.Second)
	s.base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	s.service = NewService(s.attendees, s.activity, s.window, s.supp, tx.NoopRunner{}, logger, nil)
}

func (s *CheckinServiceSuite) ctxAt(at time.Time) context.Context {
	ctx := requestcontext.WithStation(context.Background(), "station-7", false)
	return requestcontext.WithTime(ctx, at)
}

func (s *CheckinServiceSuite) register(category domain.Category, code string) *models.Attendee {
	a, err := models.NewAttendee(
		domain.NewAttendeeID(),
		code,
		category,
		"scan-"+code,
		models.Profile{Name: "Test " + code},
		s.base,
	)
	s.Require().NoError(err)
	s.Require().NoError(s.attendees.Create(context.Background(), a))
	return a
}

func (s *CheckinServiceSuite) TestAcceptRecordsActionAndActivity() {
	a := s.register(domain.CategoryAlumni, "AL-001")
	ctx := s.ctxAt(s.base)

	d, err := s.service.RequestAction(ctx, Request{
		AttendeeID: a.ID, Action: domain.ActionEntrance, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.True(d.Accepted)

	stored, err := s.attendees.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.True(stored.Flags.Day1.Entrance)

	records, err := s.activity.RecentFor(ctx, a.ID, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("AL-001", records[0].AttendeeCode)
	s.Equal(domain.ActionEntrance, records[0].Action)
	s.Equal(domain.Day1, records[0].Day)
	s.Equal("station-7", records[0].PerformedBy)
	s.Equal(s.base, records[0].PerformedAt)
}

func (s *CheckinServiceSuite) TestImmediateRetryHitsSuppressionWindow() {
	a := s.register(domain.CategoryAlumni, "AL-001")

	d, err := s.service.RequestAction(s.ctxAt(s.base), Request{
		AttendeeID: a.ID, Action: domain.ActionLunch, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.Require().True(d.Accepted)

	// Same key seconds later: the window answers before the flag is consulted.
	d, err = s.service.RequestAction(s.ctxAt(s.base.Add(3*time.Second)), Request{
		AttendeeID: a.ID, Action: domain.ActionLunch, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.False(d.Accepted)
	s.Equal(ReasonDuplicateSubmission, d.Reason)

	// After expiry the durable flag takes over with the precise reason.
	d, err = s.service.RequestAction(s.ctxAt(s.base.Add(30*time.Second)), Request{
		AttendeeID: a.ID, Action: domain.ActionLunch, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.False(d.Accepted)
	s.Equal(ReasonAlreadyCompleted, d.Reason)

	// Exactly one activity record despite three submissions.
	records, err := s.activity.RecentFor(context.Background(), a.ID, 10)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *CheckinServiceSuite) TestRejectionsLeaveNoTrace() {
	a := s.register(domain.CategoryStudent, "STU-001")

	d, err := s.service.RequestAction(s.ctxAt(s.base), Request{
		AttendeeID: a.ID, Action: domain.ActionKit, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.False(d.Accepted)
	s.Equal(ReasonNotPermitted, d.Reason)

	records, err := s.activity.RecentFor(context.Background(), a.ID, 10)
	s.Require().NoError(err)
	s.Empty(records, "rejections are not logged as activity")
	s.Equal(0, s.supp.Len(), "rejections are not marked in the window")
}

func (s *CheckinServiceSuite) TestDayClosedRejectsEveryone() {
	a := s.register(domain.CategoryFaculty, "FL-001")

	_, err := s.window.SetDay(s.ctxAt(s.base), domain.Day2, false)
	s.Require().NoError(err)

	d, err := s.service.RequestAction(s.ctxAt(s.base), Request{
		AttendeeID: a.ID, Action: domain.ActionEntrance, Day: domain.Day2,
	})
	s.Require().NoError(err)
	s.Equal(ReasonDayClosed, d.Reason)

	// Day 1 stays open.
	d, err = s.service.RequestAction(s.ctxAt(s.base), Request{
		AttendeeID: a.ID, Action: domain.ActionEntrance, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.True(d.Accepted)
}

func (s *CheckinServiceSuite) TestKitIsOneEntitlementAcrossDays() {
	a := s.register(domain.CategoryAlumni, "AL-001")

	d, err := s.service.RequestAction(s.ctxAt(s.base), Request{
		AttendeeID: a.ID, Action: domain.ActionKit, Day: domain.Day1,
	})
	s.Require().NoError(err)
	s.Require().True(d.Accepted)

	d, err = s.service.RequestAction(s.ctxAt(s.base.Add(time.Hour)), Request{
		AttendeeID: a.ID, Action: domain.ActionKit, Day: domain.Day2,
	})
	s.Require().NoError(err)
	s.False(d.Accepted)
	s.Equal(ReasonKitAlreadyIssued, d.Reason)
}

func (s *CheckinServiceSuite) TestUnknownAttendeeIsAnError() {
	_, err := s.service.RequestAction(s.ctxAt(s.base), Request{
		AttendeeID: domain.NewAttendeeID(), Action: domain.ActionEntrance, Day: domain.Day1,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// TestConcurrentSubmissionsAcceptExactlyOnce hammers one (attendee, action,
// day) key from many goroutines. However the race resolves, exactly one
// submission may win and exactly one activity record may exist.
func (s *CheckinServiceSuite) TestConcurrentSubmissionsAcceptExactlyOnce() {
	a := s.register(domain.CategoryAlumni, "AL-001")

	const workers = 100
	var accepted atomic.Int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			ctx := requestcontext.WithStation(context.Background(), fmt.Sprintf("station-%d", i%4), false)
			ctx = requestcontext.WithTime(ctx, s.base)
			d, err := s.service.RequestAction(ctx, Request{
				AttendeeID: a.ID, Action: domain.ActionEntrance, Day: domain.Day1,
			})
			if err == nil && d.Accepted {
				accepted.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), accepted.Load())

	records, err := s.activity.RecentFor(context.Background(), a.ID, workers)
	s.Require().NoError(err)
	s.Len(records, 1)

	stored, err := s.attendees.FindByID(context.Background(), a.ID)
	s.Require().NoError(err)
	s.True(stored.Flags.Day1.Entrance)
}
