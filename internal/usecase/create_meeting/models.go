package create_meeting

import (
	"time"

	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// Request модель запроса на создание встречи
type Request struct {
	ConsultantID int64            // ID консультанта
	LeadID       int64            // ID лида
	Date         time.Time        // Дата встречи (без времени)
	StartTime    types.TimeString // Время начала (например, "10:00")
	Notes        *string          // Заметки (опционально)
}

// Response модель ответа с созданной встречей
type Response struct {
	ID           int64     // ID созданной встречи
	ConsultantID int64     // ID консультанта
	LeadID       int64     // ID лида
	StartAt      time.Time // Начало встречи
	EndAt        time.Time // Конец встречи
	Status       string    // Статус встречи

	// Денормализованные данные лида
	LeadName    string
	LeadCompany *string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
