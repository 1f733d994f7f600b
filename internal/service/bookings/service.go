package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/infra/events"
	bookingRepo "github.com/voltspot/EVC-BookingService/internal/infra/storage/booking"
	"github.com/voltspot/EVC-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований:
// чтение, подтверждение, завершение, отмена, no-show.
// Создание и перенос бронирований живут в отдельных usecase'ах,
// так как требуют сериализуемой транзакции.
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	timeSource  TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	timeSource TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		timeSource:  timeSource,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings получает историю бронирований владельца EV
// Опционально фильтрует по статусу
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%s, status=%v", req.OwnerNIC, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetOwnerBookings: invalid status=%s for owner=%s", *req.Status, req.OwnerNIC)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByOwner(ctx, req.OwnerNIC, domainStatus)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%s: %v", req.OwnerNIC, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%s", len(bookings), req.OwnerNIC)
	return models.FromDomainBookingList(bookings), nil
}

// GetStationBookings получает бронирования станции с гибкой фильтрацией
// Поддерживает фильтрацию по слоту, дню, статусу и включению неактивных бронирований
func (s *Service) GetStationBookings(ctx context.Context, req *models.GetStationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStationBookings: fetching bookings for station=%s", req.StationID)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStationBookings: invalid filter for station=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStationBookings: repository error for station=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: GetStationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStationBookings: successfully fetched %d bookings for station=%s", len(bookings), req.StationID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование (pending -> confirmed)
// Операция станционного оператора
func (s *Service) Confirm(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%s", id)

	booking, err := s.transition(ctx, "Confirm", id, func(b *domain.Booking) error {
		return b.Confirm(s.timeSource.Now())
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishBookingEvent(ctx, events.EventBookingConfirmed, booking)

	s.logger.Info("Confirm: successfully confirmed booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Complete завершает зарядную сессию (confirmed -> completed)
// Слот остаётся занятым до конца забронированного окна
func (s *Service) Complete(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%s", id)

	booking, err := s.transition(ctx, "Complete", id, func(b *domain.Booking) error {
		return b.Complete(s.timeSource.Now())
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishBookingEvent(ctx, events.EventBookingCompleted, booking)

	s.logger.Info("Complete: successfully completed booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// MarkNoShow помечает бронирование как неявку (pending/confirmed -> no_show)
func (s *Service) MarkNoShow(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("MarkNoShow: marking booking id=%s as no-show", id)

	booking, err := s.transition(ctx, "MarkNoShow", id, func(b *domain.Booking) error {
		return b.MarkNoShow(s.timeSource.Now())
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishBookingEvent(ctx, events.EventBookingNoShow, booking)

	s.logger.Info("MarkNoShow: successfully marked booking id=%s as no-show", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование с указанием причины.
// Правила (активный статус, 12-часовой cutoff) проверяет domain.Booking.Cancel.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%s", id)
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if err := booking.Cancel(req.CancellationReason, s.timeSource.Now()); err != nil {
		return nil, s.mapDomainError("Cancel", id, err)
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.publisher.PublishBookingEvent(ctx, events.EventBookingCancelled, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

// transition применяет доменный переход статуса и сохраняет результат
func (s *Service) transition(ctx context.Context, op, id string, apply func(*domain.Booking) error) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := apply(booking); err != nil {
		return nil, s.mapDomainError(op, id, err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found during update", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

// getBooking получает бронирование, транслируя ошибки репозитория в сервисные
func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// mapDomainError транслирует доменные ошибки в сервисные
func (s *Service) mapDomainError(op, id string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		s.logger.Warn("%s: invalid transition for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, domain.ErrTimingViolation):
		s.logger.Warn("%s: timing violation for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrTimingViolation, err)
	default:
		s.logger.Error("%s: domain error for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - domain error: %v", ErrInternal, op, err)
	}
}
