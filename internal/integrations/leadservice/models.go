package leadservice

// Lead модель лида из основного CRM сервиса
type Lead struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Company  *string `json:"company"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Status   string  `json:"status"`
}

// ErrorResponse модель ошибки от LeadService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
