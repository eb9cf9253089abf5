package get_day_slots

import (
	"github.com/m04kA/CRM-SchedulingService/internal/domain"
	getDaySlots "github.com/m04kA/CRM-SchedulingService/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date           string  `json:"date"`
	Slots          []Slot  `json:"slots"`
	AvailableCount int     `json:"availableCount"`
	Message        *string `json:"message,omitempty"`
}

// Slot модель временного слота
type Slot struct {
	Time           string  `json:"time"`
	Available      bool    `json:"available"`
	ConsultantID   *int64  `json:"consultantId,omitempty"`
	ConsultantName *string `json:"consultantName,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:           slot.Time.String(),
			Available:      slot.Available,
			ConsultantID:   slot.ConsultantID,
			ConsultantName: slot.ConsultantName,
		}
	}

	response := &DaySlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		Slots:          slots,
		AvailableCount: resp.AvailableCount,
	}
	if resp.Message != "" {
		msg := resp.Message
		response.Message = &msg
	}
	return response
}
