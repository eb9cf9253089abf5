package availability

import (
	"context"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByConsultant(ctx context.Context, consultantID int64) ([]*domain.AvailabilitySlot, error)
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	DeleteByConsultant(ctx context.Context, consultantID int64) error
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetByConsultant(ctx context.Context, consultantID int64) ([]*domain.AvailabilityBlock, error)
	Create(ctx context.Context, blk *domain.AvailabilityBlock) (*domain.AvailabilityBlock, error)
	Delete(ctx context.Context, id, consultantID int64) error
}

// UserRepository интерфейс репозитория пользователей (для проверки прав доступа)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
