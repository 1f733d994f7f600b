package validate_booking

import (
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// Сколько соседних часов предлагать как альтернативное время
const maxTimeSuggestions = 3

// suggestAlternativeSlots возвращает слоты станции, свободные на запрошенное окно
func suggestAlternativeSlots(
	station *domain.ChargingStation,
	bookings []*domain.Booking,
	now, windowStart, windowEnd time.Time,
	excludeSlot int,
	excludeBookingID string,
) []int {
	blockedSlots := make(map[int]bool)
	for _, b := range bookings {
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if b.BlocksWindow(now, windowStart, windowEnd) {
			blockedSlots[b.SlotNumber] = true
		}
	}

	var free []int
	for slot := 1; slot <= station.TotalSlots; slot++ {
		if slot == excludeSlot || blockedSlots[slot] {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// suggestAlternativeTimes предлагает до трёх более поздних окон для того же
// слота с шагом в час. Подсказки не выходят за пределы запрошенного дня.
func suggestAlternativeTimes(
	bookings []*domain.Booking,
	now, windowStart time.Time,
	durationMinutes int,
	slotNumber int,
	excludeBookingID string,
) []SuggestedTime {
	var slotBookings []*domain.Booking
	for _, b := range bookings {
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if b.SlotNumber == slotNumber {
			slotBookings = append(slotBookings, b)
		}
	}

	var suggestions []SuggestedTime
	for i := 1; i <= maxTimeSuggestions; i++ {
		candidate := windowStart.Add(time.Duration(i) * time.Hour)
		if candidate.Day() != windowStart.Day() {
			break
		}
		candidateEnd := candidate.Add(time.Duration(durationMinutes) * time.Minute)

		suggestions = append(suggestions, SuggestedTime{
			ReservationStart: candidate,
			Available:        !domain.AnyBlocking(slotBookings, now, candidate, candidateEnd, ""),
		})
	}
	return suggestions
}
