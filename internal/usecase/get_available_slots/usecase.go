package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	ownerClient "github.com/voltspot/EVC-BookingService/internal/integrations/ownerservice"
	stationClient "github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
	"github.com/voltspot/EVC-BookingService/pkg/ptr"
)

// UseCase use case для получения доступных слотов станции.
// Доступность всегда вычисляется из активных бронирований на день,
// никаких сохранённых счётчиков свободных слотов нет.
type UseCase struct {
	bookingRepo   BookingRepository
	stationClient StationServiceClient
	ownerClient   OwnerServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationClient StationServiceClient,
	ownerClient OwnerServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		stationClient: stationClient,
		ownerClient:   ownerClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute вычисляет свободные и занятые слоты станции на запрошенное окно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: station=%s, date=%s", req.StationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем станцию
	stationData, err := uc.stationClient.GetStation(ctx, req.StationID)
	if err != nil {
		if errors.Is(err, stationClient.ErrStationNotFound) {
			uc.logger.Warn("GetAvailableSlots: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}
	station := stationData.ToDomain()

	// 3. Окно запроса: весь день или конкретный интервал
	windowStart, windowEnd := buildWindow(req)

	// 4. Все бронирования станции за день: completed фильтруется по времени
	//    окна, а не по статусу, поэтому неактивные тоже читаем
	filter := domain.BookingsFilter{
		StationID:       req.StationID,
		Day:             ptr.Ptr(windowStart),
		IncludeInactive: true,
	}

	bookings, err := uc.bookingRepo.GetByStationWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Раскладываем блокирующие бронирования по слотам
	blockersBySlot := make(map[int][]*domain.Booking)
	for _, b := range bookings {
		if b.BlocksWindow(now, windowStart, windowEnd) {
			blockersBySlot[b.SlotNumber] = append(blockersBySlot[b.SlotNumber], b)
		}
	}

	// 6. Свободен слот, который ничем не заблокирован в запрошенном окне
	availableSlots := make([]int, 0, station.TotalSlots)
	bookedSlots := make([]BookedSlotInfo, 0)
	ownerNames := make(map[string]string)

	for slot := 1; slot <= station.TotalSlots; slot++ {
		blockers := blockersBySlot[slot]
		if len(blockers) == 0 {
			availableSlots = append(availableSlots, slot)
			continue
		}

		for _, b := range blockers {
			bookedSlots = append(bookedSlots, BookedSlotInfo{
				BookingID:        b.ID,
				SlotNumber:       b.SlotNumber,
				ReservationStart: b.ReservationStart,
				ReservationEnd:   b.ReservationEnd(),
				Status:           string(b.Status),
				OwnerName:        uc.maskedOwnerName(ctx, b.OwnerNIC, ownerNames),
			})
		}
	}

	sort.Ints(availableSlots)

	uc.logger.Info("GetAvailableSlots: station=%s has %d/%d slots available",
		req.StationID, len(availableSlots), station.TotalSlots)

	return &Response{
		StationID:      station.ID,
		StationName:    station.Name,
		Date:           windowStart.Format(domain.DateFormat),
		TotalSlots:     station.TotalSlots,
		AvailableSlots: availableSlots,
		AvailableCount: len(availableSlots),
		BookedSlots:    bookedSlots,
		IsFullyBooked:  len(availableSlots) == 0,
	}, nil
}

// maskedOwnerName возвращает маскированное имя владельца с кэшем на запрос.
// Ошибки OwnerService не валят выдачу: вместо имени подставляется "Unknown".
func (uc *UseCase) maskedOwnerName(ctx context.Context, nic string, cache map[string]string) string {
	if name, ok := cache[nic]; ok {
		return name
	}

	owner, err := uc.ownerClient.GetOwner(ctx, nic)
	if err != nil {
		if !errors.Is(err, ownerClient.ErrOwnerNotFound) {
			uc.logger.Warn("GetAvailableSlots: failed to get owner nic=%s: %v", nic, err)
		}
		cache[nic] = "Unknown"
		return "Unknown"
	}

	masked := maskName(owner.FullName())
	cache[nic] = masked
	return masked
}
