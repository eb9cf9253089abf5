package meetings

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("meetings.service: meeting not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("meetings.service: access denied")

	// ErrCannotCancel возвращается, когда встречу нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("meetings.service: meeting cannot be cancelled")

	// ErrCannotComplete возвращается, когда встречу нельзя завершить в текущем статусе
	ErrCannotComplete = errors.New("meetings.service: meeting cannot be completed")

	// ErrCannotReschedule возвращается, когда встречу нельзя перенести в текущем статусе
	ErrCannotReschedule = errors.New("meetings.service: meeting cannot be rescheduled")

	// ErrSlotTaken возвращается, когда новый интервал уже занят
	ErrSlotTaken = errors.New("meetings.service: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("meetings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("meetings.service: internal error")
)
