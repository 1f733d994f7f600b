package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
	updateBooking "github.com/voltspot/EVC-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingBookingID   = "отсутствует ID бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgStationNotFound    = "зарядная станция не найдена"
	msgStationClosed      = "станция не работает в выбранное время"
	msgInvalidTransition  = "бронирование нельзя изменить в текущем статусе"
	msgTimingViolation    = "изменение бронирования нарушает временные правила"
	msgOutOfRange         = "значение вне допустимого диапазона"
	msgSlotNotAvailable   = "слот занят на новое время"
	msgSlotConflict       = "слот только что заняли, попробуйте ещё раз"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]
	if bookingID == "" {
		h.logger.Warn("PUT /bookings/{id} - Missing booking ID")
		handlers.RespondBadRequest(w, msgMissingBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrStationNotFound):
			h.logger.Warn("PUT /bookings/{id} - Station not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /bookings/{id} - Slot not available: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, updateBooking.ErrSlotConflict):
			h.logger.Warn("PUT /bookings/{id} - Concurrent conflict: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, updateBooking.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id} - Invalid transition: booking_id=%s", bookingID)
			handlers.RespondUnprocessableEntity(w, msgInvalidTransition)

		case errors.Is(err, updateBooking.ErrTimingViolation):
			h.logger.Warn("PUT /bookings/{id} - Timing violation: booking_id=%s", bookingID)
			handlers.RespondUnprocessableEntity(w, msgTimingViolation)

		case errors.Is(err, updateBooking.ErrStationClosed):
			h.logger.Warn("PUT /bookings/{id} - Station closed: booking_id=%s", bookingID)
			handlers.RespondUnprocessableEntity(w, msgStationClosed)

		case errors.Is(err, updateBooking.ErrOutOfRange):
			h.logger.Warn("PUT /bookings/{id} - Out of range: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgOutOfRange)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking rescheduled successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
