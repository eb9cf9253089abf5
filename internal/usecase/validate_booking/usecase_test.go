package validate_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// --- Фейки зависимостей ---

type fakeAvailRepo struct {
	windows []*domain.AvailabilitySlot
	total   int64
	err     error
}

func (f *fakeAvailRepo) GetActiveByConsultantAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilitySlot, error) {
	return f.windows, f.err
}

func (f *fakeAvailRepo) CountByConsultant(_ context.Context, _ int64) (int64, error) {
	return f.total, f.err
}

type fakeBlockRepo struct {
	blocks []*domain.AvailabilityBlock
	err    error
}

func (f *fakeBlockRepo) GetByConsultantInRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.AvailabilityBlock, error) {
	return f.blocks, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2025-03-11 - вторник
func tuesdayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 11, hour, minute, 0, 0, time.Local)
}

func hourRequest(start time.Time) *Request {
	return &Request{ConsultantID: 1, StartAt: start, EndAt: start.Add(time.Hour)}
}

// --- Тесты ---

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeAvailRepo{}, &fakeBlockRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "non-positive consultant", req: &Request{ConsultantID: 0, StartAt: tuesdayAt(10, 0), EndAt: tuesdayAt(11, 0)}},
		{name: "zero start", req: &Request{ConsultantID: 1, EndAt: tuesdayAt(11, 0)}},
		{name: "zero end", req: &Request{ConsultantID: 1, StartAt: tuesdayAt(10, 0)}},
		{name: "start after end", req: &Request{ConsultantID: 1, StartAt: tuesdayAt(11, 0), EndAt: tuesdayAt(10, 0)}},
		{name: "start equals end", req: &Request{ConsultantID: 1, StartAt: tuesdayAt(10, 0), EndAt: tuesdayAt(10, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_PerConsultantFallback(t *testing.T) {
	// У консультанта нет ни одного окна: действует дефолтное окно 09:00-17:00
	uc := NewUseCase(&fakeAvailRepo{total: 0}, &fakeBlockRepo{}, nopLogger{})

	assert.NoError(t, uc.Execute(context.Background(), hourRequest(tuesdayAt(10, 0))))
	// Встреча заканчивается ровно в конец окна
	assert.NoError(t, uc.Execute(context.Background(), hourRequest(tuesdayAt(16, 0))))

	err := uc.Execute(context.Background(), hourRequest(tuesdayAt(18, 0)))
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	err = uc.Execute(context.Background(), hourRequest(tuesdayAt(16, 30)))
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_ConfiguredWindows(t *testing.T) {
	avail := &fakeAvailRepo{
		windows: []*domain.AvailabilitySlot{{
			ConsultantID: 1,
			DayOfWeek:    2,
			StartTime:    "09:00",
			EndTime:      "12:00",
			IsActive:     true,
		}},
		total: 1,
	}
	uc := NewUseCase(avail, &fakeBlockRepo{}, nopLogger{})

	assert.NoError(t, uc.Execute(context.Background(), hourRequest(tuesdayAt(10, 0))))
	assert.NoError(t, uc.Execute(context.Background(), hourRequest(tuesdayAt(11, 0))))

	// Встреча вылезает за конец окна
	err := uc.Execute(context.Background(), hourRequest(tuesdayAt(11, 30)))
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	err = uc.Execute(context.Background(), hourRequest(tuesdayAt(8, 0)))
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_WindowsElsewhereDisableFallback(t *testing.T) {
	// Окна есть, но не на этот день недели: fallback не включается
	avail := &fakeAvailRepo{windows: nil, total: 3}
	uc := NewUseCase(avail, &fakeBlockRepo{}, nopLogger{})

	err := uc.Execute(context.Background(), hourRequest(tuesdayAt(10, 0)))
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_EndAtDoesNotResizeCheck(t *testing.T) {
	// Проверяемый интервал всегда равен фиксированной длительности встречи,
	// даже если вызывающая сторона передала более короткий EndAt
	avail := &fakeAvailRepo{
		windows: []*domain.AvailabilitySlot{{
			ConsultantID: 1,
			DayOfWeek:    2,
			StartTime:    "10:00",
			EndTime:      "10:30",
			IsActive:     true,
		}},
		total: 1,
	}
	uc := NewUseCase(avail, &fakeBlockRepo{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{
		ConsultantID: 1,
		StartAt:      tuesdayAt(10, 0),
		EndAt:        tuesdayAt(10, 30),
	})
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_BlockedRange(t *testing.T) {
	blocks := &fakeBlockRepo{blocks: []*domain.AvailabilityBlock{{
		ID:           7,
		ConsultantID: 1,
		StartAt:      tuesdayAt(10, 30),
		EndAt:        tuesdayAt(11, 30),
	}}}
	uc := NewUseCase(&fakeAvailRepo{total: 0}, blocks, nopLogger{})

	err := uc.Execute(context.Background(), hourRequest(tuesdayAt(10, 0)))
	assert.ErrorIs(t, err, ErrBlockedRange)
}

func TestExecute_BackToBackBlockDoesNotReject(t *testing.T) {
	// Блокировка заканчивается ровно в момент начала встречи
	blocks := &fakeBlockRepo{blocks: []*domain.AvailabilityBlock{{
		ConsultantID: 1,
		StartAt:      tuesdayAt(9, 0),
		EndAt:        tuesdayAt(10, 0),
	}}}
	uc := NewUseCase(&fakeAvailRepo{total: 0}, blocks, nopLogger{})

	assert.NoError(t, uc.Execute(context.Background(), hourRequest(tuesdayAt(10, 0))))
}

func TestExecute_RepositoryErrorFailsCall(t *testing.T) {
	uc := NewUseCase(&fakeAvailRepo{err: errors.New("db down")}, &fakeBlockRepo{}, nopLogger{})

	err := uc.Execute(context.Background(), hourRequest(tuesdayAt(10, 0)))
	assert.ErrorIs(t, err, ErrInternal)
}
