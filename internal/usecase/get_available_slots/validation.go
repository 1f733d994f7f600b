package get_available_slots

import (
	"fmt"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StationID == "" {
		return fmt.Errorf("%w: stationId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be within (0, %d] minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	return nil
}
