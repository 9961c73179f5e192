package get_availability

import (
	"fmt"

	"github.com/zarechye/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, ok := domain.ParseCategory(string(req.Category)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, req.Category)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
