package get_station_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
	"github.com/voltspot/EVC-BookingService/internal/service/bookings"
)

const (
	msgMissingStationID = "отсутствует ID станции"
	msgInvalidQuery     = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/bookings?date=&slot=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID := vars["stationId"]
	if stationID == "" {
		h.logger.Warn("GET /stations/{id}/bookings - Missing station ID")
		handlers.RespondBadRequest(w, msgMissingStationID)
		return
	}

	req, err := parseQuery(stationID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /stations/{id}/bookings - Invalid query: station=%s, error=%v", stationID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetStationBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /stations/{id}/bookings - Invalid input: station=%s", stationID)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /stations/{id}/bookings - Failed to get bookings: station=%s, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{id}/bookings - Retrieved %d bookings: station=%s", len(result.Bookings), stationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
