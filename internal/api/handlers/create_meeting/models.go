package create_meeting

import (
	"time"

	createMeeting "github.com/m04kA/CRM-SchedulingService/internal/usecase/create_meeting"
	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// CreateMeetingRequest HTTP request model
type CreateMeetingRequest struct {
	ConsultantID int64   `json:"consultantId"`
	LeadID       int64   `json:"leadId"`
	Date         string  `json:"date"`      // YYYY-MM-DD
	StartTime    string  `json:"startTime"` // HH:MM
	Notes        *string `json:"notes,omitempty"`
}

// MeetingResponse HTTP response model
type MeetingResponse struct {
	ID           int64     `json:"id"`
	ConsultantID int64     `json:"consultantId"`
	LeadID       int64     `json:"leadId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`
	LeadName     string    `json:"leadName"`
	LeadCompany  *string   `json:"leadCompany,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата и время проходят строгий разбор
func (r *CreateMeetingRequest) ToUseCaseRequest() (*createMeeting.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createMeeting.Request{
		ConsultantID: r.ConsultantID,
		LeadID:       r.LeadID,
		Date:         date,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createMeeting.Response) *MeetingResponse {
	return &MeetingResponse{
		ID:           resp.ID,
		ConsultantID: resp.ConsultantID,
		LeadID:       resp.LeadID,
		StartAt:      resp.StartAt,
		EndAt:        resp.EndAt,
		Status:       resp.Status,
		LeadName:     resp.LeadName,
		LeadCompany:  resp.LeadCompany,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
	}
}
