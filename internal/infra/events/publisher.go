package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// Названия событий жизненного цикла бронирования
const (
	EventBookingCreated     = "booking.created"
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingCompleted   = "booking.completed"
	EventBookingRescheduled = "booking.rescheduled"
	EventBookingNoShow      = "booking.no_show"
)

// Logger интерфейс логирования для издателя событий
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingEvent сообщение о смене состояния бронирования
type BookingEvent struct {
	Event            string    `json:"event"`
	BookingID        string    `json:"booking_id"`
	OwnerNIC         string    `json:"owner_nic"`
	StationID        string    `json:"station_id"`
	SlotNumber       int       `json:"slot_number"`
	ReservationStart time.Time `json:"reservation_start"`
	ReservationEnd   time.Time `json:"reservation_end"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher публикует события бронирований в Kafka.
// Nil-safe: методы на nil-приёмнике ничего не делают, что позволяет
// отключать публикацию событий через конфигурацию.
type Publisher struct {
	writer *kafka.Writer
	log    Logger
}

// NewPublisher создает издателя событий поверх kafka-go writer
func NewPublisher(brokers []string, topic string, log Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Publisher{
		writer: writer,
		log:    log,
	}
}

// PublishBookingEvent публикует событие о бронировании.
// Публикация best-effort: ошибка логируется, но не прерывает основную операцию.
// Ключ сообщения - ID станции, чтобы события одной станции шли в один partition.
func (p *Publisher) PublishBookingEvent(ctx context.Context, event string, booking *domain.Booking) {
	if p == nil {
		return
	}

	msg := BookingEvent{
		Event:            event,
		BookingID:        booking.ID,
		OwnerNIC:         booking.OwnerNIC,
		StationID:        booking.StationID,
		SlotNumber:       booking.SlotNumber,
		ReservationStart: booking.ReservationStart,
		ReservationEnd:   booking.ReservationEnd(),
		Status:           string(booking.Status),
		OccurredAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		p.log.Error("events: failed to marshal %s for booking %s: %v", event, booking.ID, err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.StationID),
		Value: payload,
	})
	if err != nil {
		p.log.Error("events: failed to publish %s for booking %s: %v", event, booking.ID, err)
		return
	}

	p.log.Info("events: published %s for booking %s", event, booking.ID)
}

// Close закрывает соединение с Kafka
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("events: failed to close kafka writer: %w", err)
	}
	return nil
}
