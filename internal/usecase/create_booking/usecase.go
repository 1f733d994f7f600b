package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/infra/events"
	stationClient "github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
	"github.com/voltspot/EVC-BookingService/pkg/ptr"
	"github.com/voltspot/EVC-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции: конкурирующее создание на тот же слот либо отработает после
// коммита (и увидит занятый слот), либо упадёт с serialization failure.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%s, station=%s, slot=%d, start=%s, duration=%d",
		req.OwnerNIC, req.StationID, req.SlotNumber,
		req.ReservationStart.Format("2006-01-02 15:04"), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем станцию
	stationData, err := uc.stationClient.GetStation(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationClient.ErrStationNotFound) {
			uc.logger.Warn("CreateBooking: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}
	station := stationData.ToDomain()

	// 4. Станция должна принимать бронирования
	if !station.IsOperational() {
		uc.logger.Warn("CreateBooking: station id=%s is not operational, status=%s", station.ID, station.Status)
		return nil, ErrStationNotOperational
	}

	// 5. Номер слота в диапазоне станции
	if err := validateSlotNumber(station, req.SlotNumber); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 6. Собираем доменную модель: здесь проверяются окно [now, now+7d]
	//    и длительность (0, 480]
	booking, err := domain.NewBooking(req.OwnerNIC, req.StationID, req.SlotNumber,
		req.ReservationStart.UTC(), req.DurationMinutes, now)
	if err != nil {
		return nil, uc.mapDomainError(err)
	}

	// 7. Начало окна бронирования в часах работы станции
	if err := validateOperatingHours(station, booking); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные бронирования этого слота на день с блокировкой (FOR UPDATE)
		filter := domain.BookingsFilter{
			StationID:       req.StationID,
			SlotNumber:      ptr.Ptr(req.SlotNumber),
			Day:             ptr.Ptr(booking.ReservationStart),
			IncludeInactive: true, // completed фильтруется по времени, а не по статусу
		}

		existing, err := uc.bookingRepo.GetByStationWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			// Цепочка ошибок сохраняется: serialization failure внутри
			// транзакции должен дойти до retry-логики txManager
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 8.2. Проверяем, что окно свободно
		if domain.AnyBlocking(existing, now, booking.ReservationStart, booking.ReservationEnd(), "") {
			uc.logger.Warn("CreateBooking: slot %d at station %s is not available for requested window",
				req.SlotNumber, req.StationID)
			return ErrSlotNotAvailable
		}

		// 8.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпаны retry сериализуемой транзакции: конкурент занял слот
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict for station=%s slot=%d",
				req.StationID, req.SlotNumber)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	uc.publisher.PublishBookingEvent(ctx, events.EventBookingCreated, result)

	// Конвертируем в response
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
	case errors.Is(err, domain.ErrTimingViolation):
		uc.logger.Warn("CreateBooking: timing violation: %v", err)
		return fmt.Errorf("%w: %v", ErrTimingViolation, err)
	case errors.Is(err, domain.ErrOutOfRange):
		uc.logger.Warn("CreateBooking: out of range: %v", err)
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	default:
		uc.logger.Error("CreateBooking: domain error: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
