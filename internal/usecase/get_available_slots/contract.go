package get_available_slots

import (
	"context"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/integrations/ownerservice"
	"github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByStationWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// StationServiceClient интерфейс клиента для StationService
type StationServiceClient interface {
	GetStation(ctx context.Context, stationID string) (*stationservice.Station, error)
}

// OwnerServiceClient интерфейс клиента для OwnerService
type OwnerServiceClient interface {
	GetOwner(ctx context.Context, nic string) (*ownerservice.Owner, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
