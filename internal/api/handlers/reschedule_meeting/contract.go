package reschedule_meeting

import (
	"context"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings/models"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

type MeetingService interface {
	Reschedule(ctx context.Context, id int64, userID int64, date time.Time, startTime types.TimeString) (*models.MeetingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
