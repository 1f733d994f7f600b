package create_booking

import (
	"fmt"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerNIC == "" {
		return fmt.Errorf("%w: ownerNic is required", ErrInvalidInput)
	}

	if req.StationID == "" {
		return fmt.Errorf("%w: stationId is required", ErrInvalidInput)
	}

	if req.SlotNumber <= 0 {
		return fmt.Errorf("%w: slotNumber must be positive", ErrInvalidInput)
	}

	if req.ReservationStart.IsZero() {
		return fmt.Errorf("%w: reservationStart is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes cannot be negative", ErrInvalidInput)
	}

	return nil
}

// validateSlotNumber проверяет, что номер слота входит в диапазон станции
func validateSlotNumber(station *domain.ChargingStation, slotNumber int) error {
	if slotNumber < 1 || slotNumber > station.TotalSlots {
		return fmt.Errorf("%w: slot %d does not exist, station has %d slots",
			ErrSlotOutOfRange, slotNumber, station.TotalSlots)
	}
	return nil
}

// validateOperatingHours проверяет, что начало бронирования попадает
// в часы работы станции. Конец окна не проверяется: сессия, начатая
// до закрытия, может дорабатывать после него.
func validateOperatingHours(station *domain.ChargingStation, booking *domain.Booking) error {
	if !station.OperatingHours.IsOpenAt(booking.ReservationStart) {
		return fmt.Errorf("%w: reservation start is outside station operating hours", ErrStationClosed)
	}
	return nil
}
