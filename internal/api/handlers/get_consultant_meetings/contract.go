package get_consultant_meetings

import (
	"context"

	"github.com/m04kA/CRM-SchedulingService/internal/service/meetings/models"
)

type MeetingService interface {
	GetConsultantMeetings(ctx context.Context, req *models.GetConsultantMeetingsRequest) (*models.MeetingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
