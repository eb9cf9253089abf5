package models

import (
	"fmt"
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// MeetingResponse модель встречи для вызывающей стороны
type MeetingResponse struct {
	ID           int64      `json:"id"`
	ConsultantID int64      `json:"consultantId"`
	LeadID       int64      `json:"leadId"`
	StartAt      time.Time  `json:"startAt"`
	EndAt        time.Time  `json:"endAt"`
	Status       string     `json:"status"`
	LeadName     string     `json:"leadName"`
	LeadCompany  *string    `json:"leadCompany,omitempty"`
	Notes        *string    `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MeetingListResponse список встреч
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
	Total    int               `json:"total"`
}

// GetConsultantMeetingsRequest запрос списка встреч консультанта
type GetConsultantMeetingsRequest struct {
	ConsultantID    int64      // Обязательный параметр
	UserID          int64      // Пользователь, выполняющий запрос
	LeadID          *int64     // Фильтр по лиду (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включать ли завершенные и отмененные встречи
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetConsultantMeetingsRequest) ToDomainFilter() (domain.MeetingsFilter, error) {
	filter := domain.MeetingsFilter{
		ConsultantID:    r.ConsultantID,
		LeadID:          r.LeadID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainMeetingStatus(*r.Status)
		if err != nil {
			return domain.MeetingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainMeetingStatus конвертирует строку в domain.MeetingStatus
func ToDomainMeetingStatus(s string) (domain.MeetingStatus, error) {
	switch domain.MeetingStatus(s) {
	case domain.StatusScheduled, domain.StatusRescheduled, domain.StatusCompleted, domain.StatusCancelled:
		return domain.MeetingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown meeting status: %q", s)
	}
}

// FromDomainMeeting конвертирует domain модель в response
func FromDomainMeeting(m *domain.Meeting) *MeetingResponse {
	return &MeetingResponse{
		ID:                 m.ID,
		ConsultantID:       m.ConsultantID,
		LeadID:             m.LeadID,
		StartAt:            m.StartAt,
		EndAt:              m.EndAt,
		Status:             string(m.Status),
		LeadName:           m.LeadName,
		LeadCompany:        m.LeadCompany,
		Notes:              m.Notes,
		CancellationReason: m.CancellationReason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FromDomainMeetingList конвертирует список domain моделей в response
func FromDomainMeetingList(meetings []*domain.Meeting) *MeetingListResponse {
	result := make([]MeetingResponse, len(meetings))
	for i, m := range meetings {
		result[i] = *FromDomainMeeting(m)
	}
	return &MeetingListResponse{
		Meetings: result,
		Total:    len(result),
	}
}
