package domain

import "time"

// Business rule constants
const (
	// DefaultDurationMinutes длительность бронирования по умолчанию (2 часа)
	DefaultDurationMinutes = 120

	// MaxDurationMinutes максимальная длительность бронирования (8 часов)
	MaxDurationMinutes = 480

	// MaxAdvanceDays максимальный горизонт бронирования (дней вперёд)
	MaxAdvanceDays = 7

	// ModificationCutoff минимальный запас до начала зарядки, при котором
	// бронирование ещё можно изменить или отменить
	ModificationCutoff = 12 * time.Hour

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, которые никогда не занимают слот.
// Используется для фильтрации при расчёте доступности.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов, при которых бронирование считается живым
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
