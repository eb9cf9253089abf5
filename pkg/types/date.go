package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// ErrInvalidDateString возвращается при некорректной дате
var ErrInvalidDateString = errors.New("types: invalid date string, expected YYYY-MM-DD")

// ParseDate парсит дату в строгом формате YYYY-MM-DD в локальной временной зоне
//
// В отличие от time.Parse не принимает незаполненные нулями компоненты ("2025-1-5").
// Календарная корректность проверяется через round-trip: сконструированная дата
// должна совпасть с исходными компонентами (time.Date нормализует 30 февраля
// в 1-2 марта, такие даты отклоняются)
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}

	// strconv.Atoi принимает знак, поэтому компоненты проверяются на цифры отдельно
	if !allDigits(parts[0]) || !allDigits(parts[1]) || !allDigits(parts[2]) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDateString, s)
	}

	return date, nil
}

// allDigits проверяет, что строка состоит только из ASCII-цифр
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// BuildLocalInstant строит момент времени на указанную дату в локальной зоне
func BuildLocalInstant(date time.Time, hour, minute, sec, millis int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		hour, minute, sec, millis*int(time.Millisecond),
		time.Local,
	)
}
