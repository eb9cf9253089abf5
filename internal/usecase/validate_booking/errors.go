package validate_booking

import "errors"

// Коды причин отказа - машинно-проверяемые строки для вызывающей стороны
const (
	ReasonOutsideAvailability = "outside availability"
	ReasonBlockedRange        = "blocked range"
)

var (
	// ErrOutsideAvailability возвращается, когда интервал не попадает в окна консультанта
	ErrOutsideAvailability = errors.New("validate_booking: " + ReasonOutsideAvailability)

	// ErrBlockedRange возвращается при пересечении с блокировкой консультанта
	ErrBlockedRange = errors.New("validate_booking: " + ReasonBlockedRange)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_booking: internal error")
)
