package update_booking

import (
	"time"

	updateBooking "github.com/voltspot/EVC-BookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	ReservationStart string `json:"reservationStart"` // RFC3339
	DurationMinutes  int    `json:"durationMinutes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               string `json:"id"`
	OwnerNIC         string `json:"ownerNic"`
	StationID        string `json:"stationId"`
	SlotNumber       int    `json:"slotNumber"`
	ReservationStart string `json:"reservationStart"`
	ReservationEnd   string `json:"reservationEnd"`
	DurationMinutes  int    `json:"durationMinutes"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID string) (*updateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.ReservationStart)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		BookingID:        bookingID,
		ReservationStart: start,
		DurationMinutes:  r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		OwnerNIC:         resp.OwnerNIC,
		StationID:        resp.StationID,
		SlotNumber:       resp.SlotNumber,
		ReservationStart: resp.ReservationStart.UTC().Format(time.RFC3339),
		ReservationEnd:   resp.ReservationEnd.UTC().Format(time.RFC3339),
		DurationMinutes:  resp.DurationMinutes,
		Status:           resp.Status,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
