package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/CRM-SchedulingService/pkg/types"
)

// MinuteInterval интервал внутри суток в минутах с начала дня
// Инвариант: Start строго меньше End
type MinuteInterval struct {
	Start int
	End   int
}

// NewMinuteInterval создает интервал с проверкой границ
// Интервал с start >= end отклоняется, границы не переставляются
func NewMinuteInterval(start, end int) (MinuteInterval, error) {
	if start >= end {
		return MinuteInterval{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidWindow, start, end)
	}
	return MinuteInterval{Start: start, End: end}, nil
}

// DefaultWorkdayInterval возвращает дефолтное рабочее окно 09:00-17:00
// Применяется, когда у консультанта (или во всей системе) не настроено ни одного окна
func DefaultWorkdayInterval() MinuteInterval {
	// Константы валидны, ошибка парсинга здесь невозможна
	start, _ := types.TimeString(DefaultWorkdayStart).Minutes()
	end, _ := types.TimeString(DefaultWorkdayEnd).Minutes()
	return MinuteInterval{Start: start, End: end}
}

// Contains проверяет, что интервал целиком вмещает отрезок [start, start+duration]
// Обе границы включительные: встреча, заканчивающаяся ровно в конец окна, допустима
func (i MinuteInterval) Contains(startMinutes, durationMinutes int) bool {
	return i.Start <= startMinutes && i.End >= startMinutes+durationMinutes
}

// IntervalsContain проверяет, что хотя бы один интервал вмещает отрезок [start, start+duration]
func IntervalsContain(intervals []MinuteInterval, startMinutes, durationMinutes int) bool {
	for _, interval := range intervals {
		if interval.Contains(startMinutes, durationMinutes) {
			return true
		}
	}
	return false
}

// Overlaps проверяет строгое пересечение двух интервалов в минутах
// Соприкосновение границ пересечением НЕ считается: встречи "впритык" разрешены
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// OverlapsInstant проверяет строгое пересечение двух интервалов времени
// Семантика идентична Overlaps: общая граница - не конфликт
func OverlapsInstant(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
