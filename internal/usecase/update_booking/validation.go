package update_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if req.ReservationStart.IsZero() {
		return fmt.Errorf("%w: reservationStart is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes cannot be negative", ErrInvalidInput)
	}

	return nil
}
