package models

import (
	"errors"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetOwnerBookingsRequest запрос на получение бронирований владельца EV
type GetOwnerBookingsRequest struct {
	OwnerNIC string  `json:"ownerNic"`
	Status   *string `json:"status,omitempty"`
}

// GetStationBookingsRequest запрос на получение бронирований станции
type GetStationBookingsRequest struct {
	StationID       string     `json:"stationId"`
	SlotNumber      *int       `json:"slotNumber,omitempty"`      // Фильтр по номеру слота (опционально)
	Date            *time.Time `json:"date,omitempty"`            // Бронирования на конкретный день (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no-show бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStationBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StationID:       r.StationID,
		SlotNumber:      r.SlotNumber,
		Day:             r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               string `json:"id"`
	OwnerNIC         string `json:"ownerNic"`
	StationID        string `json:"stationId"`
	SlotNumber       int    `json:"slotNumber"`
	ReservationStart string `json:"reservationStart"` // ISO 8601 UTC
	ReservationEnd   string `json:"reservationEnd"`   // ISO 8601 UTC, derived
	DurationMinutes  int    `json:"durationMinutes"`
	Status           string `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		OwnerNIC:           b.OwnerNIC,
		StationID:          b.StationID,
		SlotNumber:         b.SlotNumber,
		ReservationStart:   b.ReservationStart.UTC().Format(time.RFC3339),
		ReservationEnd:     b.ReservationEnd().UTC().Format(time.RFC3339),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	// Валидируем статус
	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
