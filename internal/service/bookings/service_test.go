package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltspot/EVC-BookingService/internal/domain"
	bookingRepo "github.com/voltspot/EVC-BookingService/internal/infra/storage/booking"
	"github.com/voltspot/EVC-BookingService/internal/service/bookings/models"
	"github.com/voltspot/EVC-BookingService/pkg/ptr"
)

var testNow = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockBookingRepo struct {
	getByID      func(ctx context.Context, id string) (*domain.Booking, error)
	getByOwner   func(ctx context.Context, ownerNIC string, status *domain.BookingStatus) ([]*domain.Booking, error)
	getByStation func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	updateStatus func(ctx context.Context, id string, status domain.BookingStatus) error
	cancel       func(ctx context.Context, id string, reason string) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *mockBookingRepo) GetByOwner(ctx context.Context, ownerNIC string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if m.getByOwner != nil {
		return m.getByOwner(ctx, ownerNIC, status)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) GetByStationWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if m.getByStation != nil {
		return m.getByStation(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if m.updateStatus != nil {
		return m.updateStatus(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepo) Cancel(ctx context.Context, id string, reason string) error {
	if m.cancel != nil {
		return m.cancel(ctx, id, reason)
	}
	return nil
}

type mockPublisher struct {
	events []string
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, event string, booking *domain.Booking) {
	m.events = append(m.events, event)
}

func testBooking(t *testing.T, start time.Time) *domain.Booking {
	t.Helper()
	b, err := domain.NewBooking("199512345678", "station-1", 2, start, 120, testNow)
	require.NoError(t, err)
	return b
}

func newTestService(repo *mockBookingRepo, pub *mockPublisher) *Service {
	return NewService(repo, pub, &fixedTimeProvider{now: testNow}, nopLogger{})
}

func TestGetByID(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			assert.Equal(t, booking.ID, id)
			return booking, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	resp, err := svc.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, booking.ID, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, booking.ReservationStart.Format(time.RFC3339), resp.ReservationStart)
	assert.Equal(t, booking.ReservationEnd().Format(time.RFC3339), resp.ReservationEnd)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockPublisher{})

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetOwnerBookings(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	repo := &mockBookingRepo{
		getByOwner: func(ctx context.Context, ownerNIC string, status *domain.BookingStatus) ([]*domain.Booking, error) {
			assert.Equal(t, "199512345678", ownerNIC)
			require.NotNil(t, status)
			assert.Equal(t, domain.StatusPending, *status)
			return []*domain.Booking{booking}, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	resp, err := svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		OwnerNIC: "199512345678",
		Status:   ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, booking.ID, resp.Bookings[0].ID)
}

func TestGetOwnerBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockPublisher{})

	_, err := svc.GetOwnerBookings(context.Background(), &models.GetOwnerBookingsRequest{
		OwnerNIC: "199512345678",
		Status:   ptr.Ptr("paused"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStationBookings(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	repo := &mockBookingRepo{
		getByStation: func(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
			assert.Equal(t, "station-1", filter.StationID)
			require.NotNil(t, filter.SlotNumber)
			assert.Equal(t, 2, *filter.SlotNumber)
			assert.True(t, filter.IncludeInactive)
			return []*domain.Booking{booking}, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	resp, err := svc.GetStationBookings(context.Background(), &models.GetStationBookingsRequest{
		StationID:       "station-1",
		SlotNumber:      ptr.Ptr(2),
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
}

func TestConfirm(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	var savedStatus domain.BookingStatus
	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			return booking, nil
		},
		updateStatus: func(ctx context.Context, id string, status domain.BookingStatus) error {
			savedStatus = status
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	resp, err := svc.Confirm(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, savedStatus)
	assert.Equal(t, []string{"booking.confirmed"}, pub.events)
}

func TestConfirm_InvalidTransition(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	require.NoError(t, booking.Confirm(testNow))

	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			return booking, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	_, err := svc.Confirm(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, pub.events)
}

func TestComplete(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	require.NoError(t, booking.Confirm(testNow))

	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			return booking, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	resp, err := svc.Complete(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, []string{"booking.completed"}, pub.events)
}

func TestMarkNoShow(t *testing.T) {
	booking := testBooking(t, testNow.Add(24*time.Hour))
	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			return booking, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	resp, err := svc.MarkNoShow(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "no_show", resp.Status)
	assert.Equal(t, []string{"booking.no_show"}, pub.events)
}

func TestCancel(t *testing.T) {
	booking := testBooking(t, testNow.Add(48*time.Hour))
	var savedReason string
	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			return booking, nil
		},
		cancel: func(ctx context.Context, id string, reason string) error {
			savedReason = reason
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	resp, err := svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{
		CancellationReason: "plans changed",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "plans changed", savedReason)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "plans changed", *resp.CancellationReason)
	assert.Equal(t, []string{"booking.cancelled"}, pub.events)
}

func TestCancel_WithinCutoff(t *testing.T) {
	booking := testBooking(t, testNow.Add(6*time.Hour))
	repo := &mockBookingRepo{
		getByID: func(ctx context.Context, id string) (*domain.Booking, error) {
			return booking, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	_, err := svc.Cancel(context.Background(), booking.ID, &models.CancelBookingRequest{
		CancellationReason: "too late",
	})
	assert.ErrorIs(t, err, ErrTimingViolation)
	assert.Empty(t, pub.events)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockPublisher{})

	longReason := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range longReason {
		longReason[i] = 'x'
	}

	_, err := svc.Cancel(context.Background(), "some-id", &models.CancelBookingRequest{
		CancellationReason: string(longReason),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
