package domain

import (
	"time"

	"github.com/voltspot/EVC-BookingService/pkg/types"
)

// StationStatus represents the operational status of a charging station
type StationStatus string

const (
	StationActive      StationStatus = "active"
	StationInactive    StationStatus = "inactive"
	StationMaintenance StationStatus = "maintenance"
)

// ChargingStation данные станции, получаемые из StationService.
// Сервис бронирований читает их, но никогда не изменяет.
//
// Доступность слотов всегда вычисляется из текущих бронирований;
// станция не хранит изменяемый счётчик свободных слотов.
type ChargingStation struct {
	ID             string
	Name           string
	TotalSlots     int
	Status         StationStatus
	OperatingHours OperatingHours
	PricePerHour   float64
}

// IsOperational returns true if the station accepts bookings
func (s *ChargingStation) IsOperational() bool {
	return s.Status == StationActive
}

// OperatingHours режим работы станции
type OperatingHours struct {
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	Is24Hours  bool
	ClosedDays []time.Weekday
}

// IsOpenAt reports whether the station operates at the given instant.
// A day listed in ClosedDays closes the station even in 24-hour mode.
// Time-of-day bounds are inclusive on both ends: [OpenTime, CloseTime].
func (h OperatingHours) IsOpenAt(t time.Time) bool {
	if h.isClosedDay(t.Weekday()) {
		return false
	}
	if h.Is24Hours {
		return true
	}
	if h.OpenTime.IsZero() || h.CloseTime.IsZero() {
		// Часы не заданы - считаем станцию круглосуточной
		return true
	}

	timeOfDay := types.NewTimeString(t)
	return !timeOfDay.IsBefore(h.OpenTime) && !timeOfDay.IsAfter(h.CloseTime)
}

func (h OperatingHours) isClosedDay(day time.Weekday) bool {
	for _, d := range h.ClosedDays {
		if d == day {
			return true
		}
	}
	return false
}
