package domain

import "time"

// Overlaps reports whether two half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Strict inequalities on both sides: windows that
// only touch at an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// BlocksWindow reports whether this booking occupies its slot for the query
// window [queryStart, queryEnd).
//
// A booking blocks iff its window overlaps the query window and:
//   - its status is pending or confirmed, or
//   - its status is completed and its reservation window has not elapsed yet
//     (completion is operational, not calendar: the slot stays taken until
//     the booked window runs out).
//
// Cancelled and no-show bookings never block.
func (b *Booking) BlocksWindow(now, queryStart, queryEnd time.Time) bool {
	switch b.Status {
	case StatusCancelled, StatusNoShow:
		return false
	case StatusCompleted:
		if !b.ReservationEnd().After(now) {
			return false
		}
	}
	return Overlaps(b.ReservationStart, b.ReservationEnd(), queryStart, queryEnd)
}

// AnyBlocking reports whether any of the bookings blocks the query window.
// A booking with id == excludeID is skipped: when re-validating an update the
// booking being updated must not conflict with itself.
func AnyBlocking(bookings []*Booking, now, queryStart, queryEnd time.Time, excludeID string) bool {
	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.BlocksWindow(now, queryStart, queryEnd) {
			return true
		}
	}
	return false
}

// BlockingBookings returns the bookings that block the query window,
// preserving input order
func BlockingBookings(bookings []*Booking, now, queryStart, queryEnd time.Time) []*Booking {
	var blockers []*Booking
	for _, b := range bookings {
		if b.BlocksWindow(now, queryStart, queryEnd) {
			blockers = append(blockers, b)
		}
	}
	return blockers
}
