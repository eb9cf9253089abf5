package get_day_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.MinAdvanceHours < 0 {
		return fmt.Errorf("%w: minAdvanceHours must be non-negative", ErrInvalidInput)
	}

	return nil
}
