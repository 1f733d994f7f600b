package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/voltspot/EVC-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingStationID = "отсутствует ID станции"
	msgInvalidQuery     = "некорректные параметры запроса, ожидается date=YYYY-MM-DD, time=HH:MM, duration в минутах"
	msgStationNotFound  = "зарядная станция не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/available-slots?date=&time=&duration=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID := vars["stationId"]
	if stationID == "" {
		h.logger.Warn("GET /stations/{id}/available-slots - Missing station ID")
		handlers.RespondBadRequest(w, msgMissingStationID)
		return
	}

	req, err := parseQuery(stationID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /stations/{id}/available-slots - Invalid query: station=%s, error=%v", stationID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id}/available-slots - Station not found: station=%s", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /stations/{id}/available-slots - Invalid input: station=%s, error=%v", stationID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /stations/{id}/available-slots - Failed to get slots: station=%s, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{id}/available-slots - %d/%d slots available: station=%s",
		result.AvailableCount, result.TotalSlots, stationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
