package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// ErrInvalidWindow возвращается при попытке создать окно с некорректными границами
var ErrInvalidWindow = errors.New("domain: window start must be strictly before end")

// AvailabilitySlot еженедельно повторяющееся рабочее окно консультанта
// У консультанта может быть ноль, одно или несколько окон на день недели
// (например, раздельные утренний и дневной интервалы)
type AvailabilitySlot struct {
	ID           int64
	ConsultantID int64
	DayOfWeek    int // 0=воскресенье ... 6=суббота
	StartTime    types.TimeString
	EndTime      types.TimeString
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate проверяет корректность окна
// Окно с start >= end отклоняется, границы никогда не переставляются и не обрезаются
func (s *AvailabilitySlot) Validate() error {
	if s.DayOfWeek < MinDayOfWeek || s.DayOfWeek > MaxDayOfWeek {
		return fmt.Errorf("domain: day_of_week %d is out of range [%d, %d]", s.DayOfWeek, MinDayOfWeek, MaxDayOfWeek)
	}
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidWindow, s.StartTime, s.EndTime)
	}
	return nil
}

// Interval возвращает окно в виде интервала минут с начала суток
func (s *AvailabilitySlot) Interval() (MinuteInterval, error) {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return MinuteInterval{}, err
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return MinuteInterval{}, err
	}
	return NewMinuteInterval(start, end)
}

// AvailabilityBlock разовый период недоступности консультанта (отпуск, личный блок)
// Перекрывает повторяющиеся окна: любое пересечение с кандидатом делает консультанта
// недоступным на весь слот
type AvailabilityBlock struct {
	ID           int64
	ConsultantID int64
	StartAt      time.Time
	EndAt        time.Time
	Reason       *string
	CreatedAt    time.Time
}

// Validate проверяет корректность диапазона блокировки
func (b *AvailabilityBlock) Validate() error {
	if b.StartAt.IsZero() || b.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidWindow)
	}
	if !b.StartAt.Before(b.EndAt) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidWindow, b.StartAt, b.EndAt)
	}
	return nil
}

// Blocks проверяет, пересекается ли блокировка с указанным интервалом времени
func (b *AvailabilityBlock) Blocks(startAt, endAt time.Time) bool {
	return OverlapsInstant(startAt, endAt, b.StartAt, b.EndAt)
}
