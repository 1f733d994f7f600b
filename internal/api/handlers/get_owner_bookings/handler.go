package get_owner_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
	"github.com/voltspot/EVC-BookingService/internal/service/bookings"
	"github.com/voltspot/EVC-BookingService/internal/service/bookings/models"
)

const (
	msgMissingNIC    = "отсутствует NIC владельца"
	msgInvalidStatus = "некорректный статус бронирования"
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

// Handle GET /api/v1/owners/{nic}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	nic := vars["nic"]
	if nic == "" {
		h.logger.Warn("GET /owners/{nic}/bookings - Missing NIC")
		handlers.RespondBadRequest(w, msgMissingNIC)
		return
	}

	req := &models.GetOwnerBookingsRequest{OwnerNIC: nic}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetOwnerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owners/{nic}/bookings - Invalid status: nic=%s", nic)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /owners/{nic}/bookings - Failed to get bookings: nic=%s, error=%v", nic, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{nic}/bookings - Retrieved %d bookings: nic=%s", len(result.Bookings), nic)
	handlers.RespondJSON(w, http.StatusOK, result)
}
