package stationservice

import (
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/pkg/types"
)

// Station модель зарядной станции из StationService
type Station struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	TotalSlots     int             `json:"total_slots"`
	Status         string          `json:"status"` // active, inactive, maintenance
	OperatingHours *OperatingHours `json:"operating_hours,omitempty"`
	PricePerHour   float64         `json:"price_per_hour"`
}

// OperatingHours режим работы станции
type OperatingHours struct {
	OpenTime   string `json:"open_time,omitempty"`  // HH:MM
	CloseTime  string `json:"close_time,omitempty"` // HH:MM
	Is24Hours  bool   `json:"is_24_hours"`
	ClosedDays []int  `json:"closed_days,omitempty"` // 0 = Sunday ... 6 = Saturday
}

// ErrorResponse модель ошибки от StationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain converts the transport model into the domain station
func (s *Station) ToDomain() *domain.ChargingStation {
	station := &domain.ChargingStation{
		ID:           s.ID,
		Name:         s.Name,
		TotalSlots:   s.TotalSlots,
		Status:       domain.StationStatus(s.Status),
		PricePerHour: s.PricePerHour,
	}

	if s.OperatingHours != nil {
		hours := domain.OperatingHours{
			OpenTime:  types.TimeString(s.OperatingHours.OpenTime),
			CloseTime: types.TimeString(s.OperatingHours.CloseTime),
			Is24Hours: s.OperatingHours.Is24Hours,
		}
		for _, d := range s.OperatingHours.ClosedDays {
			hours.ClosedDays = append(hours.ClosedDays, time.Weekday(d))
		}
		station.OperatingHours = hours
	}

	return station
}
