package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	// GetActiveConsultants возвращает активных консультантов в стабильном порядке (по id)
	GetActiveConsultants(ctx context.Context, roles []domain.UserRole) ([]*domain.Consultant, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveByDay(ctx context.Context, consultantIDs []int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error)
	// CountAll считает окна во всей системе - триггер system-wide fallback правила
	CountAll(ctx context.Context) (int64, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetInRange(ctx context.Context, consultantIDs []int64, from, to time.Time) ([]*domain.AvailabilityBlock, error)
}

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetInRange(ctx context.Context, consultantIDs []int64, from, to time.Time) ([]*domain.Meeting, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
