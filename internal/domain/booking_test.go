package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func newTestBooking(t *testing.T, start time.Time, duration int) *Booking {
	t.Helper()
	b, err := NewBooking("199512345678", "station-1", 2, start, duration, testNow)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	start := testNow.Add(24 * time.Hour)

	b, err := NewBooking("199512345678", "station-1", 2, start, 90, testNow)
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 90, b.DurationMinutes)
	assert.Equal(t, start.Add(90*time.Minute), b.ReservationEnd())
	assert.True(t, b.IsActive())
}

func TestNewBooking_DefaultDuration(t *testing.T) {
	b := newTestBooking(t, testNow.Add(24*time.Hour), 0)

	assert.Equal(t, DefaultDurationMinutes, b.DurationMinutes)
}

func TestNewBooking_DurationBounds(t *testing.T) {
	start := testNow.Add(24 * time.Hour)

	_, err := NewBooking("199512345678", "station-1", 2, start, -30, testNow)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewBooking("199512345678", "station-1", 2, start, MaxDurationMinutes+1, testNow)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// Ровно 480 минут допустимо
	_, err = NewBooking("199512345678", "station-1", 2, start, MaxDurationMinutes, testNow)
	assert.NoError(t, err)
}

func TestNewBooking_ReservationWindow(t *testing.T) {
	// В прошлом
	_, err := NewBooking("199512345678", "station-1", 2, testNow.Add(-time.Hour), 60, testNow)
	assert.ErrorIs(t, err, ErrTimingViolation)

	// Ровно сейчас тоже запрещено: начало должно быть строго в будущем
	_, err = NewBooking("199512345678", "station-1", 2, testNow, 60, testNow)
	assert.ErrorIs(t, err, ErrTimingViolation)

	// Ровно 7 дней вперёд допустимо
	_, err = NewBooking("199512345678", "station-1", 2, testNow.AddDate(0, 0, MaxAdvanceDays), 60, testNow)
	assert.NoError(t, err)

	// Дальше 7 дней запрещено
	_, err = NewBooking("199512345678", "station-1", 2, testNow.AddDate(0, 0, MaxAdvanceDays).Add(time.Minute), 60, testNow)
	assert.ErrorIs(t, err, ErrTimingViolation)
}

func TestBooking_Confirm(t *testing.T) {
	b := newTestBooking(t, testNow.Add(24*time.Hour), 120)

	require.NoError(t, b.Confirm(testNow))
	assert.Equal(t, StatusConfirmed, b.Status)

	// Повторное подтверждение запрещено
	err := b.Confirm(testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Complete(t *testing.T) {
	b := newTestBooking(t, testNow.Add(24*time.Hour), 120)

	// Из pending завершить нельзя
	err := b.Complete(testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, b.Confirm(testNow))
	require.NoError(t, b.Complete(testNow))
	assert.Equal(t, StatusCompleted, b.Status)
	assert.True(t, b.IsTerminal())
}

func TestBooking_MarkNoShow(t *testing.T) {
	pending := newTestBooking(t, testNow.Add(24*time.Hour), 120)
	require.NoError(t, pending.MarkNoShow(testNow))
	assert.Equal(t, StatusNoShow, pending.Status)

	confirmed := newTestBooking(t, testNow.Add(24*time.Hour), 120)
	require.NoError(t, confirmed.Confirm(testNow))
	require.NoError(t, confirmed.MarkNoShow(testNow))
	assert.Equal(t, StatusNoShow, confirmed.Status)

	// Из терминального статуса нельзя
	err := confirmed.MarkNoShow(testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Cancel(t *testing.T) {
	b := newTestBooking(t, testNow.Add(48*time.Hour), 120)

	require.NoError(t, b.Cancel("plans changed", testNow))
	assert.Equal(t, StatusCancelled, b.Status)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, "plans changed", *b.CancellationReason)

	// Повторная отмена запрещена
	err := b.Cancel("again", testNow)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Cancel_WithinCutoff(t *testing.T) {
	b := newTestBooking(t, testNow.Add(6*time.Hour), 120)

	err := b.Cancel("too late", testNow)
	assert.ErrorIs(t, err, ErrTimingViolation)
	assert.Equal(t, StatusPending, b.Status)
}

func TestBooking_CanModify_Boundary(t *testing.T) {
	// Ровно 12 часов до начала: изменение ещё разрешено
	b := newTestBooking(t, testNow.Add(ModificationCutoff), 120)
	assert.True(t, b.CanModify(testNow))

	// На минуту ближе - уже нет
	late := newTestBooking(t, testNow.Add(ModificationCutoff-time.Minute), 120)
	assert.False(t, late.CanModify(testNow))

	// Терминальный статус блокирует изменение независимо от времени
	cancelled := newTestBooking(t, testNow.Add(48*time.Hour), 120)
	require.NoError(t, cancelled.Cancel("x", testNow))
	assert.False(t, cancelled.CanModify(testNow))
}

func TestBooking_Reschedule(t *testing.T) {
	b := newTestBooking(t, testNow.Add(48*time.Hour), 120)
	require.NoError(t, b.Confirm(testNow))

	newStart := testNow.Add(72 * time.Hour)
	require.NoError(t, b.Reschedule(newStart, 60, testNow))

	// Перенос сбрасывает статус в pending
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, newStart, b.ReservationStart)
	assert.Equal(t, 60, b.DurationMinutes)
}

func TestBooking_Reschedule_KeepsDuration(t *testing.T) {
	b := newTestBooking(t, testNow.Add(48*time.Hour), 90)

	require.NoError(t, b.Reschedule(testNow.Add(72*time.Hour), 0, testNow))
	assert.Equal(t, 90, b.DurationMinutes)
}

func TestBooking_Reschedule_WithinCutoff(t *testing.T) {
	b := newTestBooking(t, testNow.Add(6*time.Hour), 120)

	err := b.Reschedule(testNow.Add(72*time.Hour), 0, testNow)
	assert.ErrorIs(t, err, ErrTimingViolation)
}

func TestBooking_Reschedule_OutsideWindow(t *testing.T) {
	b := newTestBooking(t, testNow.Add(48*time.Hour), 120)

	err := b.Reschedule(testNow.AddDate(0, 0, MaxAdvanceDays+1), 0, testNow)
	assert.ErrorIs(t, err, ErrTimingViolation)

	// Неудачный перенос не меняет бронирование
	assert.Equal(t, testNow.Add(48*time.Hour), b.ReservationStart)
}
