package create_meeting

import (
	"context"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/internal/integrations/leadservice"
	"github.com/m04kA/CRM-SchedulingService/internal/usecase/validate_booking"
)

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error)
	GetInRange(ctx context.Context, consultantIDs []int64, from, to time.Time) ([]*domain.Meeting, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultant, error)
}

// LeadServiceClient интерфейс клиента для LeadService
type LeadServiceClient interface {
	GetLead(ctx context.Context, leadID int64) (*leadservice.Lead, error)
}

// BookingValidator интерфейс повторной проверки доступности консультанта
type BookingValidator interface {
	Execute(ctx context.Context, req *validate_booking.Request) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
