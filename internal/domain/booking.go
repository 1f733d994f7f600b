package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a charging slot reservation
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"   // Waiting for station operator approval
	StatusConfirmed BookingStatus = "confirmed" // Approved and ready for charging
	StatusCancelled BookingStatus = "cancelled" // Cancelled by owner or operator
	StatusCompleted BookingStatus = "completed" // Charging session completed
	StatusNoShow    BookingStatus = "no_show"   // Owner didn't show up
)

// Booking represents a reservation of a numbered charging slot at a station
// for a bounded future time window
type Booking struct {
	ID               string
	OwnerNIC         string
	StationID        string
	SlotNumber       int
	ReservationStart time.Time
	DurationMinutes  int
	Status           BookingStatus

	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking creates a new reservation in the pending state.
// The reservation start must be strictly in the future and no more than
// MaxAdvanceDays ahead of now. A zero duration falls back to the default;
// the duration must stay within (0, MaxDurationMinutes].
func NewBooking(ownerNIC, stationID string, slotNumber int, reservationStart time.Time, durationMinutes int, now time.Time) (*Booking, error) {
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if err := validateDuration(durationMinutes); err != nil {
		return nil, err
	}
	if err := validateReservationWindow(reservationStart, now); err != nil {
		return nil, err
	}
	if slotNumber < 1 {
		return nil, fmt.Errorf("%w: slot number must be positive, got %d", ErrOutOfRange, slotNumber)
	}

	return &Booking{
		ID:               uuid.NewString(),
		OwnerNIC:         ownerNIC,
		StationID:        stationID,
		SlotNumber:       slotNumber,
		ReservationStart: reservationStart,
		DurationMinutes:  durationMinutes,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ReservationEnd returns the end of the reservation window.
// Always derived from start and duration, never stored independently.
func (b *Booking) ReservationEnd() time.Time {
	return b.ReservationStart.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsActive returns true if the booking is pending or confirmed
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanModify reports whether the booking may still be rescheduled or cancelled:
// at least ModificationCutoff before the reservation start (the exact boundary
// now+12h == start is still allowed) and the status is pending or confirmed.
func (b *Booking) CanModify(now time.Time) bool {
	return !now.Add(ModificationCutoff).After(b.ReservationStart) && b.IsActive()
}

// Confirm переводит бронирование pending -> confirmed (операция оператора станции)
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return fmt.Errorf("%w: can only confirm pending bookings, current status: %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now
	return nil
}

// Complete переводит бронирование confirmed -> completed.
// Статус отражает операционное завершение зарядки: окно бронирования при этом
// может ещё не истечь, и до его конца слот остаётся занятым (см. BlocksWindow).
func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: can only complete confirmed bookings, current status: %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now
	return nil
}

// MarkNoShow переводит неотработанное бронирование в no_show
func (b *Booking) MarkNoShow(now time.Time) error {
	if !b.IsActive() {
		return fmt.Errorf("%w: can only mark pending or confirmed bookings as no-show, current status: %s", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusNoShow
	b.UpdatedAt = now
	return nil
}

// Cancel отменяет бронирование с указанием причины.
// Действует 12-часовой cutoff: внутри него отмена запрещена.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if !b.IsActive() {
		return fmt.Errorf("%w: cannot cancel booking with status: %s", ErrInvalidTransition, b.Status)
	}
	if now.Add(ModificationCutoff).After(b.ReservationStart) {
		return fmt.Errorf("%w: cannot cancel reservation within 12 hours of scheduled time", ErrTimingViolation)
	}

	b.Status = StatusCancelled
	b.CancellationReason = &reason
	b.UpdatedAt = now
	return nil
}

// Reschedule переносит бронирование на новое время (и, опционально, длительность).
// Статус сбрасывается в pending: перенос требует повторного подтверждения оператором.
func (b *Booking) Reschedule(newStart time.Time, newDurationMinutes int, now time.Time) error {
	if !b.IsActive() {
		return fmt.Errorf("%w: cannot update booking with status: %s", ErrInvalidTransition, b.Status)
	}
	if now.Add(ModificationCutoff).After(b.ReservationStart) {
		return fmt.Errorf("%w: cannot update reservation within 12 hours of scheduled time", ErrTimingViolation)
	}
	if newDurationMinutes == 0 {
		newDurationMinutes = b.DurationMinutes
	}
	if err := validateDuration(newDurationMinutes); err != nil {
		return err
	}
	if err := validateReservationWindow(newStart, now); err != nil {
		return err
	}

	b.ReservationStart = newStart
	b.DurationMinutes = newDurationMinutes
	b.Status = StatusPending
	b.UpdatedAt = now
	return nil
}

func validateDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be greater than 0 minutes", ErrOutOfRange)
	}
	if durationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: duration cannot exceed %d minutes", ErrOutOfRange, MaxDurationMinutes)
	}
	return nil
}

func validateReservationWindow(start, now time.Time) error {
	if !start.After(now) {
		return fmt.Errorf("%w: reservation date must be in the future", ErrTimingViolation)
	}
	if start.After(now.AddDate(0, 0, MaxAdvanceDays)) {
		return fmt.Errorf("%w: reservation date must be within %d days from today", ErrTimingViolation, MaxAdvanceDays)
	}
	return nil
}

// BookingsFilter фильтр для выборки бронирований станции
type BookingsFilter struct {
	StationID       string
	SlotNumber      *int           // Фильтр по номеру слота (опционально)
	Day             *time.Time     // Бронирования, начинающиеся в этот день (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show бронирования
}
