package get_available_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	getAvailableSlots "github.com/voltspot/EVC-BookingService/internal/usecase/get_available_slots"
	"github.com/voltspot/EVC-BookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StationID      string           `json:"stationId"`
	StationName    string           `json:"stationName"`
	Date           string           `json:"date"`
	TotalSlots     int              `json:"totalSlots"`
	AvailableSlots []int            `json:"availableSlots"`
	AvailableCount int              `json:"availableCount"`
	BookedSlots    []BookedSlotInfo `json:"bookedSlots"`
	IsFullyBooked  bool             `json:"isFullyBooked"`
}

// BookedSlotInfo занятый слот с маскированным именем владельца
type BookedSlotInfo struct {
	BookingID        string `json:"bookingId"`
	SlotNumber       int    `json:"slotNumber"`
	ReservationStart string `json:"reservationStart"`
	ReservationEnd   string `json:"reservationEnd"`
	Status           string `json:"status"`
	OwnerName        string `json:"ownerName"`
}

// parseQuery разбирает query-параметры в модель use case
func parseQuery(stationID string, query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		StationID: stationID,
		Date:      date,
	}

	if timeStr := query.Get("time"); timeStr != "" {
		ts, err := types.NewTimeStringFromString(timeStr)
		if err != nil {
			return nil, err
		}
		req.Time = &ts
	}

	if durationStr := query.Get("duration"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	booked := make([]BookedSlotInfo, len(resp.BookedSlots))
	for i, b := range resp.BookedSlots {
		booked[i] = BookedSlotInfo{
			BookingID:        b.BookingID,
			SlotNumber:       b.SlotNumber,
			ReservationStart: b.ReservationStart.UTC().Format(time.RFC3339),
			ReservationEnd:   b.ReservationEnd.UTC().Format(time.RFC3339),
			Status:           b.Status,
			OwnerName:        b.OwnerName,
		}
	}

	return &AvailableSlotsResponse{
		StationID:      resp.StationID,
		StationName:    resp.StationName,
		Date:           resp.Date,
		TotalSlots:     resp.TotalSlots,
		AvailableSlots: resp.AvailableSlots,
		AvailableCount: resp.AvailableCount,
		BookedSlots:    booked,
		IsFullyBooked:  resp.IsFullyBooked,
	}
}
