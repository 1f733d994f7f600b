package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	"github.com/voltspot/EVC-BookingService/internal/integrations/ownerservice"
	"github.com/voltspot/EVC-BookingService/internal/integrations/stationservice"
	"github.com/voltspot/EVC-BookingService/pkg/ptr"
	"github.com/voltspot/EVC-BookingService/pkg/types"
)

var (
	testNow  = time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	testDate = time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)
)

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
		ID:         "station-1",
		Name:       "Downtown Fast Charge",
		TotalSlots: 3,
		Status:     "active",
	}, nil
}

type mockOwnerClient struct {
	getOwnerFunc func(ctx context.Context, nic string) (*ownerservice.Owner, error)
	calls        int
}

func (m *mockOwnerClient) GetOwner(ctx context.Context, nic string) (*ownerservice.Owner, error) {
	m.calls++
	if m.getOwnerFunc != nil {
		return m.getOwnerFunc(ctx, nic)
	}
	return &ownerservice.Owner{NIC: nic, FirstName: "Jane", LastName: "Doe"}, nil
}

func confirmedBooking(t *testing.T, slot int, start time.Time, duration int) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking("199512345678", "station-1", slot, start, duration, testNow)
	require.NoError(t, err)
	require.NoError(t, b.Confirm(testNow))
	return b
}

func newTestUseCase(repo *mockBookingRepo, owners *mockOwnerClient) *UseCase {
	uc := NewUseCase(repo, &mockStationClient{}, owners, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_WindowedAvailability(t *testing.T) {
	// Слот 2 занят с 10:00 до 12:00, запрошено окно 11:00-12:00
	booked := confirmedBooking(t, 2, testDate.Add(10*time.Hour), 120)
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{booked}, nil
		},
	}
	uc := newTestUseCase(repo, &mockOwnerClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		StationID:       "station-1",
		Date:            testDate,
		Time:            ptr.Ptr(types.TimeString("11:00")),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, resp.AvailableSlots)
	assert.Equal(t, 2, resp.AvailableCount)
	assert.False(t, resp.IsFullyBooked)
	assert.Equal(t, "2025-10-02", resp.Date)

	require.Len(t, resp.BookedSlots, 1)
	assert.Equal(t, booked.ID, resp.BookedSlots[0].BookingID)
	assert.Equal(t, 2, resp.BookedSlots[0].SlotNumber)
	assert.Equal(t, "confirmed", resp.BookedSlots[0].Status)
	assert.Equal(t, "Jane D.", resp.BookedSlots[0].OwnerName)
}

func TestExecute_SlotFreeOutsideBookedWindow(t *testing.T) {
	// Бронирование 10:00-12:00 не мешает окну 12:00-13:00
	booked := confirmedBooking(t, 2, testDate.Add(10*time.Hour), 120)
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{booked}, nil
		},
	}
	uc := newTestUseCase(repo, &mockOwnerClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		StationID:       "station-1",
		Date:            testDate,
		Time:            ptr.Ptr(types.TimeString("12:00")),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, resp.AvailableSlots)
	assert.Empty(t, resp.BookedSlots)
}

func TestExecute_WholeDayWhenNoTime(t *testing.T) {
	// Без времени окном считается весь день
	booked := confirmedBooking(t, 1, testDate.Add(18*time.Hour), 60)
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{booked}, nil
		},
	}
	uc := newTestUseCase(repo, &mockOwnerClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		StationID: "station-1",
		Date:      testDate,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, resp.AvailableSlots)
	require.Len(t, resp.BookedSlots, 1)
}

func TestExecute_CancelledDoesNotOccupy(t *testing.T) {
	cancelled := confirmedBooking(t, 1, testDate.Add(10*time.Hour), 120)
	require.NoError(t, cancelled.Cancel("plans changed", testNow))

	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{cancelled}, nil
		},
	}
	uc := newTestUseCase(repo, &mockOwnerClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		StationID: "station-1",
		Date:      testDate,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, resp.AvailableSlots)
}

func TestExecute_FullyBooked(t *testing.T) {
	bookings := []*domain.Booking{
		confirmedBooking(t, 1, testDate.Add(10*time.Hour), 120),
		confirmedBooking(t, 2, testDate.Add(10*time.Hour), 120),
		confirmedBooking(t, 3, testDate.Add(10*time.Hour), 120),
	}
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	uc := newTestUseCase(repo, &mockOwnerClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		StationID:       "station-1",
		Date:            testDate,
		Time:            ptr.Ptr(types.TimeString("10:00")),
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsFullyBooked)
	assert.Empty(t, resp.AvailableSlots)
	assert.Len(t, resp.BookedSlots, 3)
}

func TestExecute_OwnerLookupFailure(t *testing.T) {
	booked := confirmedBooking(t, 1, testDate.Add(10*time.Hour), 120)
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return []*domain.Booking{booked}, nil
		},
	}
	owners := &mockOwnerClient{
		getOwnerFunc: func(ctx context.Context, nic string) (*ownerservice.Owner, error) {
			return nil, errors.New("owner service unavailable")
		},
	}
	uc := newTestUseCase(repo, owners)

	resp, err := uc.Execute(context.Background(), &Request{
		StationID: "station-1",
		Date:      testDate,
	})
	require.NoError(t, err)

	// Ошибка OwnerService не валит выдачу, имя подставляется как Unknown
	require.Len(t, resp.BookedSlots, 1)
	assert.Equal(t, "Unknown", resp.BookedSlots[0].OwnerName)
}

func TestExecute_OwnerNameCachedPerRequest(t *testing.T) {
	bookings := []*domain.Booking{
		confirmedBooking(t, 1, testDate.Add(10*time.Hour), 60),
		confirmedBooking(t, 1, testDate.Add(14*time.Hour), 60),
	}
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	owners := &mockOwnerClient{}
	uc := newTestUseCase(repo, owners)

	resp, err := uc.Execute(context.Background(), &Request{
		StationID: "station-1",
		Date:      testDate,
	})
	require.NoError(t, err)

	require.Len(t, resp.BookedSlots, 2)
	assert.Equal(t, 1, owners.calls)
}

func TestExecute_StationNotFound(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockOwnerClient{})
	uc.stationClient = &mockStationClient{
		getStationFunc: func(ctx context.Context, stationID string) (*stationservice.Station, error) {
			return nil, stationservice.ErrStationNotFound
		},
	}

	_, err := uc.Execute(context.Background(), &Request{
		StationID: "missing",
		Date:      testDate,
	})
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "Jane D.", maskName("Jane Doe"))
	assert.Equal(t, "Jane", maskName("Jane"))
	assert.Equal(t, "Unknown", maskName(""))
	assert.Equal(t, "Unknown", maskName("   "))
	assert.Equal(t, "Anna S.", maskName("Anna Maria Silva"))
}

func TestBuildWindow(t *testing.T) {
	// Весь день без времени
	start, end := buildWindow(&Request{Date: testDate})
	assert.Equal(t, testDate, start)
	assert.Equal(t, testDate.Add(24*time.Hour), end)

	// Конкретное окно с длительностью
	start, end = buildWindow(&Request{
		Date:            testDate,
		Time:            ptr.Ptr(types.TimeString("11:30")),
		DurationMinutes: 90,
	})
	assert.Equal(t, testDate.Add(11*time.Hour+30*time.Minute), start)
	assert.Equal(t, testDate.Add(13*time.Hour), end)

	// Длительность по умолчанию 2 часа
	start, end = buildWindow(&Request{
		Date: testDate,
		Time: ptr.Ptr(types.TimeString("09:00")),
	})
	assert.Equal(t, testDate.Add(9*time.Hour), start)
	assert.Equal(t, testDate.Add(11*time.Hour), end)
}
