package availability

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("availability.service: block not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("availability.service: access denied")

	// ErrInvalidWindow возвращается при некорректном окне доступности
	ErrInvalidWindow = errors.New("availability.service: invalid availability window")

	// ErrInvalidBlock возвращается при некорректной блокировке
	ErrInvalidBlock = errors.New("availability.service: invalid availability block")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability.service: internal error")
)
