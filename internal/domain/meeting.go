package domain

import "time"

// MeetingStatus статус встречи
type MeetingStatus string

const (
	StatusScheduled   MeetingStatus = "SCHEDULED"
	StatusRescheduled MeetingStatus = "RESCHEDULED"
	StatusCompleted   MeetingStatus = "COMPLETED"
	StatusCancelled   MeetingStatus = "CANCELLED"
)

// Meeting встреча консультанта с лидом
type Meeting struct {
	ID           int64
	ConsultantID int64
	LeadID       int64
	StartAt      time.Time
	EndAt        time.Time
	Status       MeetingStatus

	// Denormalized lead data for history
	LeadName    string
	LeadCompany *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если встреча занимает время консультанта
// COMPLETED и CANCELLED встречи никогда не создают конфликтов
func (m *Meeting) IsActive() bool {
	return m.Status == StatusScheduled || m.Status == StatusRescheduled
}

// CanBeCancelled возвращает true, если встречу можно отменить
func (m *Meeting) CanBeCancelled() bool {
	return m.Status == StatusScheduled || m.Status == StatusRescheduled
}

// CanBeRescheduled возвращает true, если встречу можно перенести
func (m *Meeting) CanBeRescheduled() bool {
	return m.Status == StatusScheduled || m.Status == StatusRescheduled
}

// ConflictsWith проверяет, пересекается ли активная встреча с указанным интервалом
func (m *Meeting) ConflictsWith(startAt, endAt time.Time) bool {
	if !m.IsActive() {
		return false
	}
	return OverlapsInstant(startAt, endAt, m.StartAt, m.EndAt)
}

// MeetingsFilter фильтр для выборки встреч консультанта
type MeetingsFilter struct {
	ConsultantID    int64          // Обязательный параметр
	LeadID          *int64         // Фильтр по лиду (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *MeetingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершенные и отмененные встречи
}
