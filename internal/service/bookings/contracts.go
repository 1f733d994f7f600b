package bookings

import (
	"context"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByOwner(ctx context.Context, ownerNIC string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStationWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Cancel(ctx context.Context, id string, reason string) error
}

// EventPublisher интерфейс издателя событий бронирований
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event string, booking *domain.Booking)
}

// TimeProvider источник текущего времени (инжектируется для тестов)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
