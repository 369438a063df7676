package attendee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatepass/internal/attendee/models"
	"gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

type AttendeeStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestAttendeeStoreSuite(t *testing.T) {
	suite.Run(t, new(AttendeeStoreSuite))
}

func (s *AttendeeStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *AttendeeStoreSuite) newAttendee(code, scanCode string, category domain.Category) *models.Attendee {
	a, err := models.NewAttendee(
		domain.NewAttendeeID(),
		code,
		category,
		scanCode,
		models.Profile{Name: "Holder of " + code},
		time.Now(),
	)
	s.Require().NoError(err)
	return a
}

func (s *AttendeeStoreSuite) TestCreateAndLookups() {
	s.Run("creates and finds by scan code and ID", func() {
		a := s.newAttendee("AL-001", "scan-1", domain.CategoryAlumni)
		s.Require().NoError(s.store.Create(s.ctx, a))

		byScan, err := s.store.FindByScanCode(s.ctx, "scan-1")
		s.Require().NoError(err)
		s.Equal(a.ID, byScan.ID)

		byID, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.Equal("AL-001", byID.Code)
	})

	s.Run("returns ErrNotFound for unknown lookups", func() {
		_, err := s.store.FindByScanCode(s.ctx, "nope")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByID(s.ctx, domain.NewAttendeeID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate scan code", func() {
		first := s.newAttendee("FL-001", "scan-dup", domain.CategoryFaculty)
		second := s.newAttendee("FL-002", "scan-dup", domain.CategoryFaculty)
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().ErrorIs(s.store.Create(s.ctx, second), sentinel.ErrAlreadyUsed)
	})
}

func (s *AttendeeStoreSuite) TestApplyAction() {
	s.Run("sets the flag once and only once", func() {
		a := s.newAttendee("AL-001", "scan-1", domain.CategoryAlumni)
		s.Require().NoError(s.store.Create(s.ctx, a))

		s.Require().NoError(s.store.ApplyAction(s.ctx, a.ID, domain.ActionEntrance, domain.Day1))

		err := s.store.ApplyAction(s.ctx, a.ID, domain.ActionEntrance, domain.Day1)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)

		stored, err := s.store.FindByID(s.ctx, a.ID)
		s.Require().NoError(err)
		s.True(stored.Flags.Day1.Entrance)
		s.False(stored.Flags.Day2.Entrance)
	})

	s.Run("kit on one day blocks kit on the other", func() {
		a := s.newAttendee("AL-002", "scan-2", domain.CategoryAlumni)
		s.Require().NoError(s.store.Create(s.ctx, a))

		s.Require().NoError(s.store.ApplyAction(s.ctx, a.ID, domain.ActionKit, domain.Day2))
		err := s.store.ApplyAction(s.ctx, a.ID, domain.ActionKit, domain.Day1)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("rejects combinations outside the schedule", func() {
		a := s.newAttendee("AL-003", "scan-3", domain.CategoryAlumni)
		s.Require().NoError(s.store.Create(s.ctx, a))

		err := s.store.ApplyAction(s.ctx, a.ID, domain.ActionDinner, domain.Day2)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("unknown attendee is ErrNotFound", func() {
		err := s.store.ApplyAction(s.ctx, domain.NewAttendeeID(), domain.ActionEntrance, domain.Day1)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *AttendeeStoreSuite) TestSearch() {
	mkAttendee := func(code, scanCode, name, email string) {
		a, err := models.NewAttendee(
			domain.NewAttendeeID(), code, domain.CategoryStudent, scanCode,
			models.Profile{Name: name, Email: email}, time.Now(),
		)
		s.Require().NoError(err)
		s.Require().NoError(s.store.Create(s.ctx, a))
	}
	mkAttendee("STU-001", "s1", "Asha Rao", "asha@example.org")
	mkAttendee("STU-002", "s2", "Dev Iyer", "dev@example.org")

	s.Run("matches name case-insensitively", func() {
		out, err := s.store.Search(s.ctx, "ASHA", 10)
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal("STU-001", out[0].Code)
	})

	s.Run("matches attendee code", func() {
		out, err := s.store.Search(s.ctx, "stu-002", 10)
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal("Dev Iyer", out[0].Profile.Name)
	})

	s.Run("respects the limit", func() {
		out, err := s.store.Search(s.ctx, "", 1)
		s.Require().NoError(err)
		s.Len(out, 1)
	})
}

func (s *AttendeeStoreSuite) TestSummary() {
	alumni := s.newAttendee("AL-001", "scan-a", domain.CategoryAlumni)
	student := s.newAttendee("STU-001", "scan-b", domain.CategoryStudent)
	s.Require().NoError(s.store.Create(s.ctx, alumni))
	s.Require().NoError(s.store.Create(s.ctx, student))

	s.Require().NoError(s.store.ApplyAction(s.ctx, alumni.ID, domain.ActionEntrance, domain.Day1))
	s.Require().NoError(s.store.ApplyAction(s.ctx, alumni.ID, domain.ActionKit, domain.Day1))
	s.Require().NoError(s.store.ApplyAction(s.ctx, student.ID, domain.ActionEntrance, domain.Day1))
	s.Require().NoError(s.store.ApplyAction(s.ctx, student.ID, domain.ActionLunch, domain.Day2))

	sum, err := s.store.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, sum.Total)
	s.Equal(1, sum.ByCategory[domain.CategoryAlumni])
	s.Equal(1, sum.ByCategory[domain.CategoryStudent])
	s.Equal(2, sum.Day1Entrance)
	s.Equal(1, sum.Day2Lunch)
	s.Equal(1, sum.KitsIssued)
	s.Equal(0, sum.Day1Dinner)
}
