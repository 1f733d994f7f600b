package validate_booking

import (
	"errors"
	"net/http"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
	"github.com/voltspot/EVC-BookingService/internal/api/middleware"
	validateBooking "github.com/voltspot/EVC-BookingService/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingOwnerNIC    = "отсутствует идентификатор пользователя"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerNIC, ok := middleware.GetOwnerNIC(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/validate - Missing owner NIC")
		handlers.RespondUnauthorized(w, msgMissingOwnerNIC)
		return
	}

	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerNIC)
	if err != nil {
		h.logger.Warn("POST /bookings/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/validate - Failed to validate: station=%s, error=%v", req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/validate - Validation result canBook=%t: station=%s, slot=%d",
		result.CanBook, req.StationID, req.SlotNumber)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
