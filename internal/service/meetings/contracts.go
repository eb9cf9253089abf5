package meetings

import (
	"context"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	GetWithFilter(ctx context.Context, filter domain.MeetingsFilter) ([]*domain.Meeting, error)
	Cancel(ctx context.Context, id int64, reason string) error
	Reschedule(ctx context.Context, id int64, startAt, endAt time.Time) error
	UpdateStatus(ctx context.Context, id int64, status domain.MeetingStatus) error
}

// UserRepository интерфейс репозитория пользователей (для проверки прав доступа)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultant, error)
}

// BookingValidator интерфейс проверки доступности консультанта (для переноса встречи)
type BookingValidator interface {
	Execute(ctx context.Context, req *validate_booking.Request) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
