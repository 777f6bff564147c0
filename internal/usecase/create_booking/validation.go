package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-StorageService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Ошибки количества (полки, дни) отклоняются до обращения к хранилищу.
func validateRequest(req *Request) error {
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}

	if req.LesseeID <= 0 {
		return fmt.Errorf("%w: lesseeID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if req.NumShelves < 1 {
		return fmt.Errorf("%w: shelf count must be at least 1, got %d", domain.ErrInvalidQuantity, req.NumShelves)
	}

	return nil
}
