package validate_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	stationClient "github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
	"github.com/voltspot/EVC-BookingService/pkg/ptr"
)

// UseCase use case для предварительной проверки бронирования.
// Прогоняет те же правила, что и создание, но без транзакции и записи.
// Проверки идут в фиксированном порядке: станция, номер слота, тайминг,
// занятость слота, часы работы. При занятом слоте в ответ добавляются
// подсказки с альтернативными слотами и временами.
type UseCase struct {
	bookingRepo   BookingRepository
	stationClient StationServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationClient StationServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		stationClient: stationClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет проверку бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: owner=%s, station=%s, slot=%d, start=%s",
		req.OwnerNIC, req.StationID, req.SlotNumber, req.ReservationStart.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	resp := &Response{Messages: []string{}}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}
	windowStart := req.ReservationStart.UTC()
	windowEnd := windowStart.Add(time.Duration(duration) * time.Minute)

	// 2. Станция существует и принимает бронирования: fail-fast
	stationData, err := uc.stationClient.GetStation(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationClient.ErrStationNotFound) {
			resp.Messages = append(resp.Messages, msgStationNotFound)
			return resp, nil
		}
		uc.logger.Error("ValidateBooking: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}
	station := stationData.ToDomain()

	if !station.IsOperational() {
		resp.Messages = append(resp.Messages, msgStationNotActive)
		return resp, nil
	}

	// 3. Номер слота в диапазоне станции: fail-fast
	if req.SlotNumber > station.TotalSlots {
		resp.Messages = append(resp.Messages,
			fmt.Sprintf(msgSlotOutOfRangeTmpl, req.SlotNumber, station.TotalSlots))
		return resp, nil
	}

	// 4. Тайминг и длительность: fail-fast
	if messages := checkTiming(windowStart, duration, now); len(messages) > 0 {
		resp.Messages = append(resp.Messages, messages...)
		return resp, nil
	}

	// 5. Занятость слота. Бронирования дня читаем один раз:
	//    они же нужны для подсказок.
	filter := domain.BookingsFilter{
		StationID:       req.StationID,
		Day:             ptr.Ptr(windowStart),
		IncludeInactive: true,
	}

	bookings, err := uc.bookingRepo.GetByStationWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	var slotBookings []*domain.Booking
	for _, b := range bookings {
		if req.ExcludeBookingID != "" && b.ID == req.ExcludeBookingID {
			continue
		}
		if b.SlotNumber == req.SlotNumber {
			slotBookings = append(slotBookings, b)
		}
	}

	// Занятый слот не прерывает проверку: причины отказа накапливаются,
	// чтобы клиент увидел и конфликт, и нерабочие часы за один запрос
	if blockers := domain.BlockingBookings(slotBookings, now, windowStart, windowEnd); len(blockers) > 0 {
		resp.Messages = append(resp.Messages, fmt.Sprintf(msgSlotBookedTmpl,
			req.SlotNumber,
			blockers[0].ReservationStart.Format(domain.TimeFormat),
			blockers[0].ReservationEnd().Format(domain.TimeFormat)))
		resp.SuggestedSlots = suggestAlternativeSlots(station, bookings, now,
			windowStart, windowEnd, req.SlotNumber, req.ExcludeBookingID)
		resp.SuggestedTimes = suggestAlternativeTimes(bookings, now,
			windowStart, duration, req.SlotNumber, req.ExcludeBookingID)
	}

	// 6. Начало окна в часах работы станции
	if !station.OperatingHours.IsOpenAt(windowStart) {
		resp.Messages = append(resp.Messages, msgStationClosed)
	}

	if len(resp.Messages) > 0 {
		return resp, nil
	}

	// Все проверки пройдены
	resp.CanBook = true
	resp.EstimatedCost = ptr.Ptr(estimateCost(station, duration))

	uc.logger.Info("ValidateBooking: booking is valid, estimated cost %.2f", *resp.EstimatedCost)
	return resp, nil
}
