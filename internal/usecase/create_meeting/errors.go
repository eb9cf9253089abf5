package create_meeting

import "errors"

var (
	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("create_meeting: consultant not found")

	// ErrConsultantNotEligible возвращается, когда пользователь не участвует в расписании
	// (неактивен или роль вне набора {CONSULTANT, SDR})
	ErrConsultantNotEligible = errors.New("create_meeting: user cannot hold meetings")

	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("create_meeting: lead not found")

	// ErrTooLateToBook возвращается при нарушении минимального времени до начала встречи
	ErrTooLateToBook = errors.New("create_meeting: too late to book this slot")

	// ErrSlotTaken возвращается, когда интервал уже занят другой встречей
	ErrSlotTaken = errors.New("create_meeting: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_meeting: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_meeting: internal error")
)
