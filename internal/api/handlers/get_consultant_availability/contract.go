package get_consultant_availability

import (
	"context"

	"github.com/m04kA/CRM-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetConsultantAvailability(ctx context.Context, consultantID, userID int64) (*models.ConsultantAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
