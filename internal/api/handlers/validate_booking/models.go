package validate_booking

import (
	"time"

	validateBooking "github.com/voltspot/EVC-BookingService/internal/usecase/validate_booking"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	StationID        string `json:"stationId"`
	SlotNumber       int    `json:"slotNumber"`
	ReservationStart string `json:"reservationStart"` // RFC3339
	DurationMinutes  int    `json:"durationMinutes,omitempty"`
	ExcludeBookingID string `json:"excludeBookingId,omitempty"`
}

// ValidationResponse HTTP response model
type ValidationResponse struct {
	CanBook        bool            `json:"canBook"`
	Messages       []string        `json:"messages"`
	EstimatedCost  *float64        `json:"estimatedCost,omitempty"`
	SuggestedSlots []int           `json:"suggestedSlots,omitempty"`
	SuggestedTimes []SuggestedTime `json:"suggestedTimes,omitempty"`
}

// SuggestedTime альтернативное время для того же слота
type SuggestedTime struct {
	ReservationStart string `json:"reservationStart"`
	Available        bool   `json:"available"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(ownerNIC string) (*validateBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.ReservationStart)
	if err != nil {
		return nil, err
	}

	return &validateBooking.Request{
		OwnerNIC:         ownerNIC,
		StationID:        r.StationID,
		SlotNumber:       r.SlotNumber,
		ReservationStart: start,
		DurationMinutes:  r.DurationMinutes,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateBooking.Response) *ValidationResponse {
	times := make([]SuggestedTime, len(resp.SuggestedTimes))
	for i, t := range resp.SuggestedTimes {
		times[i] = SuggestedTime{
			ReservationStart: t.ReservationStart.UTC().Format(time.RFC3339),
			Available:        t.Available,
		}
	}

	return &ValidationResponse{
		CanBook:        resp.CanBook,
		Messages:       resp.Messages,
		EstimatedCost:  resp.EstimatedCost,
		SuggestedSlots: resp.SuggestedSlots,
		SuggestedTimes: times,
	}
}
