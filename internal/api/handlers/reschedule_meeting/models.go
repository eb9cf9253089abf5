package reschedule_meeting

import (
	"time"

	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// RescheduleMeetingRequest HTTP request model
type RescheduleMeetingRequest struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
}

// Parse строго разбирает дату и время переноса
func (r *RescheduleMeetingRequest) Parse() (time.Time, types.TimeString, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, "", err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return time.Time{}, "", err
	}

	return date, startTime, nil
}
