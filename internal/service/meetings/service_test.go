package meetings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	meetingRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/meeting"
	userRepo "github.com/m04kA/CRM-SchedulingService/internal/infra/storage/user"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
)

// --- Фейки зависимостей ---

type fakeMeetingRepo struct {
	meetings map[int64]*domain.Meeting

	cancelled     bool
	cancelReason  string
	rescheduled   bool
	rescheduleErr error
	updatedStatus domain.MeetingStatus
}

func (f *fakeMeetingRepo) GetByID(_ context.Context, id int64) (*domain.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, meetingRepo.ErrMeetingNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepo) GetWithFilter(_ context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error) {
	result := make([]*domain.Meeting, 0)
	for _, m := range f.meetings {
		if m.ConsultantID == filter.ConsultantID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMeetingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelled = true
	f.cancelReason = reason
	return nil
}

func (f *fakeMeetingRepo) Reschedule(_ context.Context, id int64, startAt, endAt time.Time) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	f.rescheduled = true
	if m, ok := f.meetings[id]; ok {
		m.StartAt = startAt
		m.EndAt = endAt
		m.Status = domain.StatusRescheduled
	}
	return nil
}

func (f *fakeMeetingRepo) UpdateStatus(_ context.Context, _ int64, status domain.MeetingStatus) error {
	f.updatedStatus = status
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.Consultant
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.Consultant, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type fakeValidator struct {
	err error
}

func (f *fakeValidator) Execute(_ context.Context, _ *validate_booking.Request) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Вспомогательные конструкторы ---

const (
	consultantID = int64(1)
	otherID      = int64(2)
	adminID      = int64(99)
)

func scheduledMeeting() *domain.Meeting {
	return &domain.Meeting{
		ID:           5,
		ConsultantID: consultantID,
		LeadID:       10,
		StartAt:      time.Date(2025, 3, 11, 10, 0, 0, 0, time.Local),
		EndAt:        time.Date(2025, 3, 11, 11, 0, 0, 0, time.Local),
		Status:       domain.StatusScheduled,
		LeadName:     "Иван Петров",
	}
}

func newTestService(meeting *domain.Meeting, validator *fakeValidator) (*Service, *fakeMeetingRepo) {
	meetings := &fakeMeetingRepo{meetings: map[int64]*domain.Meeting{}}
	if meeting != nil {
		meetings.meetings[meeting.ID] = meeting
	}
	users := &fakeUserRepo{users: map[int64]*domain.Consultant{
		consultantID: {ID: consultantID, Role: domain.RoleConsultant, Status: domain.UserStatusActive},
		otherID:      {ID: otherID, Role: domain.RoleConsultant, Status: domain.UserStatusActive},
		adminID:      {ID: adminID, Role: domain.RoleAdmin, Status: domain.UserStatusActive},
	}}
	return NewService(meetings, users, validator, nopLogger{}), meetings
}

// --- Тесты ---

func TestGetByID_AccessControl(t *testing.T) {
	svc, _ := newTestService(scheduledMeeting(), &fakeValidator{})

	t.Run("owner can read", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 5, consultantID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, adminID)
		assert.NoError(t, err)
	})

	t.Run("other consultant is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, otherID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 404, consultantID)
		assert.ErrorIs(t, err, ErrMeetingNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels with reason", func(t *testing.T) {
		svc, meetings := newTestService(scheduledMeeting(), &fakeValidator{})

		err := svc.Cancel(context.Background(), 5, consultantID, "лид попросил перенести")
		require.NoError(t, err)
		assert.True(t, meetings.cancelled)
		assert.Equal(t, "лид попросил перенести", meetings.cancelReason)
	})

	t.Run("completed meeting cannot be cancelled", func(t *testing.T) {
		m := scheduledMeeting()
		m.Status = domain.StatusCompleted
		svc, _ := newTestService(m, &fakeValidator{})

		err := svc.Cancel(context.Background(), 5, consultantID, "")
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("reason length is limited", func(t *testing.T) {
		svc, _ := newTestService(scheduledMeeting(), &fakeValidator{})

		err := svc.Cancel(context.Background(), 5, consultantID, strings.Repeat("о", domain.MaxCancellationReasonLen+1))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestComplete(t *testing.T) {
	t.Run("active meeting is completed", func(t *testing.T) {
		svc, meetings := newTestService(scheduledMeeting(), &fakeValidator{})

		err := svc.Complete(context.Background(), 5, consultantID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, meetings.updatedStatus)
	})

	t.Run("cancelled meeting cannot be completed", func(t *testing.T) {
		m := scheduledMeeting()
		m.Status = domain.StatusCancelled
		svc, _ := newTestService(m, &fakeValidator{})

		err := svc.Complete(context.Background(), 5, consultantID)
		assert.ErrorIs(t, err, ErrCannotComplete)
	})
}

func TestReschedule(t *testing.T) {
	newDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local)

	t.Run("successful reschedule", func(t *testing.T) {
		svc, meetings := newTestService(scheduledMeeting(), &fakeValidator{})

		resp, err := svc.Reschedule(context.Background(), 5, consultantID, newDate, "14:00")
		require.NoError(t, err)
		assert.True(t, meetings.rescheduled)
		assert.Equal(t, time.Date(2025, 3, 12, 14, 0, 0, 0, time.Local), resp.StartAt)
		assert.Equal(t, time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local), resp.EndAt)
	})

	t.Run("validator rejection propagates", func(t *testing.T) {
		svc, _ := newTestService(scheduledMeeting(), &fakeValidator{err: validate_booking.ErrOutsideAvailability})

		_, err := svc.Reschedule(context.Background(), 5, consultantID, newDate, "14:00")
		assert.ErrorIs(t, err, validate_booking.ErrOutsideAvailability)
	})

	t.Run("storage conflict maps to slot taken", func(t *testing.T) {
		svc, meetings := newTestService(scheduledMeeting(), &fakeValidator{})
		meetings.rescheduleErr = meetingRepo.ErrMeetingConflict

		_, err := svc.Reschedule(context.Background(), 5, consultantID, newDate, "14:00")
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("cancelled meeting cannot be rescheduled", func(t *testing.T) {
		m := scheduledMeeting()
		m.Status = domain.StatusCancelled
		svc, _ := newTestService(m, &fakeValidator{})

		_, err := svc.Reschedule(context.Background(), 5, consultantID, newDate, "14:00")
		assert.ErrorIs(t, err, ErrCannotReschedule)
	})
}
