package create_booking

import (
	"errors"
	"net/http"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
	"github.com/voltspot/EVC-BookingService/internal/api/middleware"
	createBooking "github.com/voltspot/EVC-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStart          = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingOwnerNIC       = "отсутствует идентификатор пользователя"
	msgStationNotFound       = "зарядная станция не найдена"
	msgStationNotOperational = "станция не принимает бронирования"
	msgStationClosed         = "станция не работает в выбранное время"
	msgSlotOutOfRange        = "номер слота вне диапазона станции"
	msgSlotNotAvailable      = "выбранный слот занят на это время"
	msgSlotConflict          = "слот только что заняли, попробуйте ещё раз"
	msgTimingViolation       = "время бронирования нарушает правила"
	msgOutOfRange            = "значение вне допустимого диапазона"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerNIC, ok := middleware.GetOwnerNIC(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing owner NIC")
		handlers.RespondUnauthorized(w, msgMissingOwnerNIC)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerNIC)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: station=%s, slot=%d", req.StationID, req.SlotNumber)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Concurrent conflict: station=%s, slot=%d", req.StationID, req.SlotNumber)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings - Station not found: station=%s", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createBooking.ErrStationNotOperational):
			h.logger.Warn("POST /bookings - Station not operational: station=%s", req.StationID)
			handlers.RespondUnprocessableEntity(w, msgStationNotOperational)

		case errors.Is(err, createBooking.ErrStationClosed):
			h.logger.Warn("POST /bookings - Station closed: station=%s", req.StationID)
			handlers.RespondUnprocessableEntity(w, msgStationClosed)

		case errors.Is(err, createBooking.ErrSlotOutOfRange):
			h.logger.Warn("POST /bookings - Slot out of range: station=%s, slot=%d", req.StationID, req.SlotNumber)
			handlers.RespondBadRequest(w, msgSlotOutOfRange)

		case errors.Is(err, createBooking.ErrTimingViolation):
			h.logger.Warn("POST /bookings - Timing violation: station=%s, start=%s", req.StationID, req.ReservationStart)
			handlers.RespondUnprocessableEntity(w, msgTimingViolation)

		case errors.Is(err, createBooking.ErrOutOfRange):
			h.logger.Warn("POST /bookings - Out of range: station=%s", req.StationID)
			handlers.RespondBadRequest(w, msgOutOfRange)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: station=%s, error=%v", req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, owner=%s", result.ID, ownerNIC)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
