package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/infra/events"
	bookingRepo "github.com/voltspot/EVC-BookingService/internal/infra/storage/booking"
	stationClient "github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
	"github.com/voltspot/EVC-BookingService/pkg/ptr"
	"github.com/voltspot/EVC-BookingService/pkg/txmanager"
)

// UseCase use case для переноса бронирования на новое время.
// Перенос сбрасывает статус в pending и проходит ту же проверку
// доступности слота, что и создание.
type UseCase struct {
	bookingRepo   BookingRepository
	stationClient StationServiceClient
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationClient StationServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		stationClient: stationClient,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет перенос бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%s, newStart=%s, duration=%d",
		req.BookingID, req.ReservationStart.Format("2006-01-02 15:04"), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 2. Чтение, проверка доступности и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Станция нужна для проверки часов работы нового окна
		stationData, err := uc.stationClient.GetStation(txCtx, booking.StationID)
		if err != nil {
			if errors.Is(err, stationClient.ErrStationNotFound) {
				uc.logger.Warn("UpdateBooking: station id=%s not found", booking.StationID)
				return ErrStationNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get station id=%s: %v", booking.StationID, err)
			return fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
		}
		station := stationData.ToDomain()

		// 2.3. Применяем доменный перенос: статус, 12-часовой cutoff,
		//      окно [now, now+7d] и длительность проверяются внутри
		if err := booking.Reschedule(req.ReservationStart.UTC(), req.DurationMinutes, now); err != nil {
			return uc.mapDomainError(err)
		}

		// 2.4. Новое начало окна в часах работы станции
		if !station.OperatingHours.IsOpenAt(booking.ReservationStart) {
			uc.logger.Warn("UpdateBooking: new reservation start is outside station operating hours")
			return ErrStationClosed
		}

		// 2.5. Бронирования этого слота на новый день с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			StationID:       booking.StationID,
			SlotNumber:      ptr.Ptr(booking.SlotNumber),
			Day:             ptr.Ptr(booking.ReservationStart),
			IncludeInactive: true,
		}

		existing, err := uc.bookingRepo.GetByStationWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 2.6. Проверяем доступность, исключая само переносимое бронирование
		if domain.AnyBlocking(existing, now, booking.ReservationStart, booking.ReservationEnd(), booking.ID) {
			uc.logger.Warn("UpdateBooking: slot %d at station %s is not available for new window",
				booking.SlotNumber, booking.StationID)
			return ErrSlotNotAvailable
		}

		// 2.7. Сохраняем перенос
		if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("UpdateBooking: serialization conflict for booking=%s", req.BookingID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully rescheduled booking id=%s", result.ID)

	uc.publisher.PublishBookingEvent(ctx, events.EventBookingRescheduled, result)

	return &Response{
		ID:               result.ID,
		OwnerNIC:         result.OwnerNIC,
		StationID:        result.StationID,
		SlotNumber:       result.SlotNumber,
		ReservationStart: result.ReservationStart,
		ReservationEnd:   result.ReservationEnd(),
		DurationMinutes:  result.DurationMinutes,
		Status:           string(result.Status),
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// mapDomainError транслирует доменные ошибки в ошибки usecase
func (uc *UseCase) mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		uc.logger.Warn("UpdateBooking: invalid transition: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrTimingViolation):
		uc.logger.Warn("UpdateBooking: timing violation: %v", err)
		return fmt.Errorf("%w: %v", ErrTimingViolation, err)
	case errors.Is(err, domain.ErrOutOfRange):
		uc.logger.Warn("UpdateBooking: out of range: %v", err)
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	default:
		uc.logger.Error("UpdateBooking: domain error: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
