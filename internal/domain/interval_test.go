package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

func TestNewMinuteInterval(t *testing.T) {
	interval, err := NewMinuteInterval(540, 720)
	require.NoError(t, err)
	assert.Equal(t, 540, interval.Start)
	assert.Equal(t, 720, interval.End)

	// Границы не переставляются и не обрезаются
	_, err = NewMinuteInterval(720, 540)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewMinuteInterval(540, 540)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestMinuteInterval_Contains(t *testing.T) {
	// Окно 09:00-12:00
	interval := MinuteInterval{Start: 540, End: 720}

	tests := []struct {
		name  string
		start int
		want  bool
	}{
		{name: "start of window", start: 540, want: true},
		{name: "middle of window", start: 600, want: true},
		{name: "meeting ends exactly at window end", start: 660, want: true},
		{name: "meeting overflows window end", start: 661, want: false},
		{name: "before window", start: 480, want: false},
		{name: "after window", start: 720, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Contains(tt.start, MeetingDurationMinutes))
		})
	}
}

func TestIntervalsContain(t *testing.T) {
	// Раздельные утреннее и дневное окна
	intervals := []MinuteInterval{
		{Start: 540, End: 720},  // 09:00-12:00
		{Start: 840, End: 1020}, // 14:00-17:00
	}

	assert.True(t, IntervalsContain(intervals, 600, 60))
	assert.True(t, IntervalsContain(intervals, 900, 60))
	// Обеденный перерыв не покрыт ни одним окном
	assert.False(t, IntervalsContain(intervals, 780, 60))
	assert.False(t, IntervalsContain(nil, 600, 60))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart int
		aEnd   int
		bStart int
		bEnd   int
		want   bool
	}{
		{name: "partial overlap", aStart: 540, aEnd: 660, bStart: 600, bEnd: 720, want: true},
		{name: "containment", aStart: 540, aEnd: 720, bStart: 600, bEnd: 660, want: true},
		{name: "back to back is not an overlap", aStart: 540, aEnd: 600, bStart: 600, bEnd: 660, want: false},
		{name: "disjoint", aStart: 540, aEnd: 600, bStart: 720, bEnd: 780, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestOverlapsInstant(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)
	end := base.Add(time.Hour)

	assert.True(t, OverlapsInstant(base, end, base.Add(30*time.Minute), base.Add(90*time.Minute)))
	// Встык - не пересечение
	assert.False(t, OverlapsInstant(base, end, end, end.Add(time.Hour)))
	assert.False(t, OverlapsInstant(base, end, base.Add(-time.Hour), base))
}

func TestDefaultWorkdayInterval(t *testing.T) {
	interval := DefaultWorkdayInterval()
	assert.Equal(t, 540, interval.Start)
	assert.Equal(t, 1020, interval.End)

	// Интервал выводится из строковых констант и не может с ними разойтись
	startMinutes, err := types.TimeString(DefaultWorkdayStart).Minutes()
	require.NoError(t, err)
	endMinutes, err := types.TimeString(DefaultWorkdayEnd).Minutes()
	require.NoError(t, err)
	assert.Equal(t, startMinutes, interval.Start)
	assert.Equal(t, endMinutes, interval.End)
}
