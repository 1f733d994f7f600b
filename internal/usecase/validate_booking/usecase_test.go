package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
)

var testNow = time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockBookingRepo struct {
	getByStation func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) GetByStationWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if m.getByStation != nil {
		return m.getByStation(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

type mockStationClient struct {
	getStationFunc func(ctx context.Context, stationID string) (*stationservice.Station, error)
}

func (m *mockStationClient) GetStation(ctx context.Context, stationID string) (*stationservice.Station, error) {
	if m.getStationFunc != nil {
		return m.getStationFunc(ctx, stationID)
	}
	return &stationservice.Station{
		ID:             "station-1",
		Name:           "Downtown Fast Charge",
		TotalSlots:     3,
		Status:         "active",
		PricePerHour:   12.0,
		OperatingHours: &stationservice.OperatingHours{Is24Hours: true},
	}, nil
}

func confirmedBooking(t *testing.T, slot int, start time.Time, duration int) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking("199811112222", "station-1", slot, start, duration, testNow)
	require.NoError(t, err)
	require.NoError(t, b.Confirm(testNow))
	return b
}

func newTestUseCase(repo *mockBookingRepo, station *mockStationClient) *UseCase {
	uc := NewUseCase(repo, station, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		OwnerNIC:         "199512345678",
		StationID:        "station-1",
		SlotNumber:       2,
		ReservationStart: testNow.Add(26 * time.Hour), // 2025-10-02 10:00
		DurationMinutes:  120,
	}
}

func TestExecute_CanBook(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockStationClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.CanBook)
	assert.Empty(t, resp.Messages)
	require.NotNil(t, resp.EstimatedCost)
	// 12.0 за час, 120 минут
	assert.InDelta(t, 24.0, *resp.EstimatedCost, 0.001)
}

func TestExecute_StationNotFound(t *testing.T) {
	station := &mockStationClient{
		getStationFunc: func(ctx context.Context, stationID string) (*stationservice.Station, error) {
			return nil, stationservice.ErrStationNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, station)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	assert.Equal(t, []string{msgStationNotFound}, resp.Messages)
}

func TestExecute_StationNotActive(t *testing.T) {
	station := &mockStationClient{
		getStationFunc: func(ctx context.Context, stationID string) (*stationservice.Station, error) {
			return &stationservice.Station{ID: "station-1", TotalSlots: 3, Status: "inactive"}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, station)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	assert.Equal(t, []string{msgStationNotActive}, resp.Messages)
}

func TestExecute_SlotOutOfRange(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockStationClient{})

	req := validRequest()
	req.SlotNumber = 5

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "Slot number 5 does not exist, station has 3 slots", resp.Messages[0])
}

func TestExecute_TimingMessages(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockStationClient{})

	// В прошлом
	req := validRequest()
	req.ReservationStart = testNow.Add(-time.Hour)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resp.Messages, msgReservationInPast)

	// Дальше 7 дней
	req = validRequest()
	req.ReservationStart = testNow.AddDate(0, 0, 8)

	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resp.Messages, msgReservationTooFar)

	// Слишком длинное окно
	req = validRequest()
	req.DurationMinutes = 481

	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, resp.Messages, msgInvalidDuration)
}

func TestExecute_SlotTakenWithSuggestions(t *testing.T) {
	// Слот 2 занят 10:00-12:00 и 13:00-14:00, слоты 1 и 3 свободны
	day := testNow.Add(26 * time.Hour).Truncate(24 * time.Hour)
	bookings := []*domain.Booking{
		confirmedBooking(t, 2, day.Add(10*time.Hour), 120),
		confirmedBooking(t, 2, day.Add(13*time.Hour), 60),
	}
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	uc := newTestUseCase(repo, &mockStationClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	assert.Equal(t, []string{"Slot 2 is already booked from 10:00 to 12:00"}, resp.Messages)
	assert.Equal(t, []int{1, 3}, resp.SuggestedSlots)

	// Подсказки времени: 11:00 (пересекается с 10:00-12:00), 12:00
	// (пересекается с 13:00-14:00), 13:00 (занято)
	require.Len(t, resp.SuggestedTimes, 3)
	assert.Equal(t, day.Add(11*time.Hour), resp.SuggestedTimes[0].ReservationStart)
	assert.False(t, resp.SuggestedTimes[0].Available)
	assert.False(t, resp.SuggestedTimes[1].Available)
	assert.False(t, resp.SuggestedTimes[2].Available)
}

func TestExecute_SuggestedTimeAvailable(t *testing.T) {
	// Слот 2 занят только 10:00-12:00, окно 12:00 уже свободно
	day := testNow.Add(26 * time.Hour).Truncate(24 * time.Hour)
	bookings := []*domain.Booking{
		confirmedBooking(t, 2, day.Add(10*time.Hour), 120),
	}
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	uc := newTestUseCase(repo, &mockStationClient{})

	req := validRequest()
	req.DurationMinutes = 60 // окно 10:00-11:00

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.SuggestedTimes, 3)
	assert.False(t, resp.SuggestedTimes[0].Available) // 11:00-12:00
	assert.True(t, resp.SuggestedTimes[1].Available)  // 12:00-13:00
	assert.True(t, resp.SuggestedTimes[2].Available)  // 13:00-14:00
}

func TestExecute_SuggestionsStopAtDayBoundary(t *testing.T) {
	// Запрос на 22:00: подсказка 23:00 последняя в пределах дня
	day := testNow.Add(26 * time.Hour).Truncate(24 * time.Hour)
	bookings := []*domain.Booking{
		confirmedBooking(t, 2, day.Add(22*time.Hour), 60),
	}
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	uc := newTestUseCase(repo, &mockStationClient{})

	req := validRequest()
	req.ReservationStart = day.Add(22 * time.Hour)
	req.DurationMinutes = 60

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.SuggestedTimes, 1)
	assert.Equal(t, day.Add(23*time.Hour), resp.SuggestedTimes[0].ReservationStart)
}

func TestExecute_SlotTakenAndStationClosed(t *testing.T) {
	// Занятый слот не скрывает нерабочие часы: обе причины в одном ответе
	day := testNow.Add(26 * time.Hour).Truncate(24 * time.Hour)
	bookings := []*domain.Booking{
		confirmedBooking(t, 2, day.Add(10*time.Hour), 120),
	}
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	station := &mockStationClient{
		getStationFunc: func(ctx context.Context, stationID string) (*stationservice.Station, error) {
			return &stationservice.Station{
				ID:         "station-1",
				TotalSlots: 3,
				Status:     "active",
				OperatingHours: &stationservice.OperatingHours{
					OpenTime:  "18:00",
					CloseTime: "22:00",
				},
			}, nil
		},
	}
	uc := newTestUseCase(repo, station)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "Slot 2 is already booked from 10:00 to 12:00", resp.Messages[0])
	assert.Equal(t, msgStationClosed, resp.Messages[1])
	assert.Equal(t, []int{1, 3}, resp.SuggestedSlots)
}

func TestExecute_ExcludeBookingID(t *testing.T) {
	// При проверке переноса собственное бронирование не конфликтует
	day := testNow.Add(26 * time.Hour).Truncate(24 * time.Hour)
	own := confirmedBooking(t, 2, day.Add(10*time.Hour), 120)

	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{own}, nil
		},
	}
	uc := newTestUseCase(repo, &mockStationClient{})

	req := validRequest()
	req.ExcludeBookingID = own.ID

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.CanBook)
}

func TestExecute_StationClosed(t *testing.T) {
	station := &mockStationClient{
		getStationFunc: func(ctx context.Context, stationID string) (*stationservice.Station, error) {
			return &stationservice.Station{
				ID:         "station-1",
				TotalSlots: 3,
				Status:     "active",
				OperatingHours: &stationservice.OperatingHours{
					OpenTime:  "08:00",
					CloseTime: "18:00",
				},
			}, nil
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, station)

	req := validRequest()
	req.ReservationStart = testNow.Add(38 * time.Hour) // 2025-10-02 22:00

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.CanBook)
	assert.Equal(t, []string{msgStationClosed}, resp.Messages)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockStationClient{})

	req := validRequest()
	req.OwnerNIC = ""

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
