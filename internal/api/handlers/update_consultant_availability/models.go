package update_consultant_availability

import (
	"github.com/m04kA/CRM-SchedulingService/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP request model
// Полностью заменяет недельное расписание консультанта
type UpdateAvailabilityRequest struct {
	Windows []models.WindowInput `json:"windows"`
}

// UpdateAvailabilityResponse HTTP response model
type UpdateAvailabilityResponse struct {
	ConsultantID int64                   `json:"consultantId"`
	Windows      []models.WindowResponse `json:"windows"`
}
