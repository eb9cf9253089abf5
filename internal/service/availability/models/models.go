package models

import (
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// WindowInput модель окна доступности при замене недельного расписания
type WindowInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=воскресенье ... 6=суббота
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	IsActive  bool   `json:"isActive"`
}

// WindowResponse модель окна доступности
type WindowResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// BlockResponse модель блокировки
type BlockResponse struct {
	ID      int64     `json:"id"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// ConsultantAvailabilityResponse расписание консультанта: окна и блокировки
type ConsultantAvailabilityResponse struct {
	ConsultantID int64            `json:"consultantId"`
	Windows      []WindowResponse `json:"windows"`
	Blocks       []BlockResponse  `json:"blocks"`
}

// FromDomainSlots конвертирует окна в response модели
func FromDomainSlots(slots []*domain.AvailabilitySlot) []WindowResponse {
	result := make([]WindowResponse, len(slots))
	for i, s := range slots {
		result[i] = WindowResponse{
			ID:        s.ID,
			DayOfWeek: s.DayOfWeek,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			IsActive:  s.IsActive,
		}
	}
	return result
}

// FromDomainBlocks конвертирует блокировки в response модели
func FromDomainBlocks(blocks []*domain.AvailabilityBlock) []BlockResponse {
	result := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		result[i] = BlockResponse{
			ID:      b.ID,
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
			Reason:  b.Reason,
		}
	}
	return result
}
