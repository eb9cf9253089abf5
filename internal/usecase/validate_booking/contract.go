package validate_booking

import (
	"context"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveByConsultantAndDay(ctx context.Context, consultantID int64, dayOfWeek int) ([]*domain.AvailabilitySlot, error)
	// CountByConsultant считает все окна консультанта - триггер per-consultant fallback правила
	CountByConsultant(ctx context.Context, consultantID int64) (int64, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	GetByConsultantInRange(ctx context.Context, consultantID int64, from, to time.Time) ([]*domain.AvailabilityBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
