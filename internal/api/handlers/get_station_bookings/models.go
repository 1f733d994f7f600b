package get_station_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры в модель сервиса
func parseQuery(stationID string, query url.Values) (*models.GetStationBookingsRequest, error) {
	req := &models.GetStationBookingsRequest{StationID: stationID}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if slot := query.Get("slot"); slot != "" {
		slotNumber, err := strconv.Atoi(slot)
		if err != nil {
			return nil, err
		}
		req.SlotNumber = &slotNumber
	}

	if date := query.Get("date"); date != "" {
		day, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			return nil, err
		}
		req.Date = &day
	}

	if include := query.Get("includeInactive"); include != "" {
		includeInactive, err := strconv.ParseBool(include)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
