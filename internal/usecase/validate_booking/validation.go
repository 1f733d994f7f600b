package validate_booking

import (
	"fmt"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// Тексты причин отказа, возвращаемые клиенту как данные
const (
	msgStationNotFound    = "Charging station not found"
	msgStationNotActive   = "Charging station is not available for booking"
	msgReservationInPast  = "Reservation date must be in the future"
	msgReservationTooFar  = "Reservation date must be within 7 days from today"
	msgInvalidDuration    = "Duration must be between 1 and 480 minutes"
	msgSlotBookedTmpl     = "Slot %d is already booked from %s to %s"
	msgStationClosed      = "Station is closed during the requested time window"
	msgSlotOutOfRangeTmpl = "Slot number %d does not exist, station has %d slots"
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

// checkTiming проверяет окно бронирования и длительность,
// возвращая список причин отказа
func checkTiming(start time.Time, durationMinutes int, now time.Time) []string {
	var messages []string

	if !start.After(now) {
		messages = append(messages, msgReservationInPast)
	} else if start.After(now.AddDate(0, 0, domain.MaxAdvanceDays)) {
		messages = append(messages, msgReservationTooFar)
	}

	if durationMinutes <= 0 || durationMinutes > domain.MaxDurationMinutes {
		messages = append(messages, msgInvalidDuration)
	}

	return messages
}

// estimateCost оценивает стоимость зарядной сессии по тарифу станции
func estimateCost(station *domain.ChargingStation, durationMinutes int) float64 {
	return station.PricePerHour * float64(durationMinutes) / 60.0
}
