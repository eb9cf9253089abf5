package get_day_slots

import (
	"time"

	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// Request модель запроса на получение слотов на день
type Request struct {
	Date            string // Дата в формате YYYY-MM-DD
	MinAdvanceHours int    // Минимальное время до начала встречи в часах (>= 0)
}

// Response модель ответа со списком слотов
type Response struct {
	Date           time.Time // Дата, на которую запрашивались слоты
	Slots          []Slot    // Полный список кандидатов (включая недоступные)
	AvailableCount int       // Количество доступных слотов
	Message        string    // Пояснение (например, выходной день), опционально
}

// Slot кандидат на время начала встречи
// Недоступные слоты остаются в списке, чтобы UI мог отрисовать их задизейбленными
type Slot struct {
	Time           types.TimeString // Время начала (например, "10:00")
	Available      bool             // Доступен ли слот для бронирования
	ConsultantID   *int64           // ID консультанта, который возьмет встречу (если доступен)
	ConsultantName *string          // Имя консультанта (если доступен)
}
