package create_block

import (
	"time"

	"github.com/m04kA/CRM-SchedulingService/internal/domain"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// ToDomainBlock конвертирует HTTP запрос в domain модель
func (r *CreateBlockRequest) ToDomainBlock() *domain.AvailabilityBlock {
	return &domain.AvailabilityBlock{
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Reason:  r.Reason,
	}
}
