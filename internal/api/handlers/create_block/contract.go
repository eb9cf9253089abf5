package create_block

import (
	"context"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	"github.com/m04kA/CRM-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateBlock(ctx context.Context, consultantID, userID int64, block *domain.AvailabilityBlock) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
