package update_consultant_availability

import (
	"context"

	"github.com/m04kA/CRM-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ReplaceWindows(ctx context.Context, consultantID, userID int64, inputs []models.WindowInput) ([]models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
