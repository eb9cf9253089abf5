package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeeting_ConflictsWith(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)

	tests := []struct {
		name   string
		status MeetingStatus
		qStart time.Time
		qEnd   time.Time
		want   bool
	}{
		{name: "scheduled overlapping", status: StatusScheduled, qStart: start.Add(30 * time.Minute), qEnd: end.Add(30 * time.Minute), want: true},
		{name: "rescheduled overlapping", status: StatusRescheduled, qStart: start, qEnd: end, want: true},
		{name: "cancelled never conflicts", status: StatusCancelled, qStart: start, qEnd: end, want: false},
		{name: "completed never conflicts", status: StatusCompleted, qStart: start, qEnd: end, want: false},
		{name: "back to back", status: StatusScheduled, qStart: end, qEnd: end.Add(time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Meeting{StartAt: start, EndAt: end, Status: tt.status}
			assert.Equal(t, tt.want, m.ConflictsWith(tt.qStart, tt.qEnd))
		})
	}
}

func TestMeeting_StatusTransitions(t *testing.T) {
	for _, status := range []MeetingStatus{StatusScheduled, StatusRescheduled} {
		m := &Meeting{Status: status}
		assert.True(t, m.IsActive())
		assert.True(t, m.CanBeCancelled())
		assert.True(t, m.CanBeRescheduled())
	}

	for _, status := range []MeetingStatus{StatusCompleted, StatusCancelled} {
		m := &Meeting{Status: status}
		assert.False(t, m.IsActive())
		assert.False(t, m.CanBeCancelled())
		assert.False(t, m.CanBeRescheduled())
	}
}

func TestMeetingStatusSets(t *testing.T) {
	// Списки статусов должны совпадать с семантикой IsActive:
	// по активному списку репозиторий фильтрует конфликтующие встречи
	for _, status := range ActiveMeetingStatuses {
		assert.True(t, (&Meeting{Status: status}).IsActive(), "status %s", status)
	}
	for _, status := range InactiveMeetingStatuses {
		assert.False(t, (&Meeting{Status: status}).IsActive(), "status %s", status)
	}

	// Вместе списки покрывают все статусы без пересечений
	all := append(append([]MeetingStatus{}, ActiveMeetingStatuses...), InactiveMeetingStatuses...)
	assert.ElementsMatch(t, []MeetingStatus{StatusScheduled, StatusRescheduled, StatusCompleted, StatusCancelled}, all)
}

func TestConsultant_CanHoldMeetings(t *testing.T) {
	assert.True(t, (&Consultant{Role: RoleConsultant, Status: UserStatusActive}).CanHoldMeetings())
	assert.True(t, (&Consultant{Role: RoleSDR, Status: UserStatusActive}).CanHoldMeetings())
	assert.False(t, (&Consultant{Role: RoleAdmin, Status: UserStatusActive}).CanHoldMeetings())
	assert.False(t, (&Consultant{Role: RoleConsultant, Status: UserStatusInactive}).CanHoldMeetings())
}
