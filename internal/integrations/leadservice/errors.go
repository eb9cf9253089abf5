package leadservice

import "errors"

var (
	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("leadservice client: lead not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("leadservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("leadservice client: invalid response")
)
