package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// CANCEL
// ======================================================

func TestCancelBooking_Idempotent(t *testing.T) {
	store := bookingtest.Seeded()
	b := seedActive(store)
	dispatcher, sink := newAudit()
	uc := NewCancelBooking(store, dispatcher, testOptions())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		st, err := uc.Execute(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, st)
	}
	dispatcher.Close()

	stored, _ := store.Booking(b.ID)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	require.NotNil(t, stored.CancelledAt)
	assert.Equal(t, []string{"booking_cancelled"}, sink.actions())
}

func TestCancelBooking_NotFound(t *testing.T) {
	store := bookingtest.Seeded()

	_, err := NewCancelBooking(store, nil, testOptions()).Execute(context.Background(), 404)
	requireKind(t, err, httperr.KindNotFound)
}

func TestCancelBooking_CompletedIsFinal(t *testing.T) {
	store := bookingtest.Seeded()
	b := seedActive(store)
	b.Status = string(domain.StatusCompleted)
	store.Put(b)

	_, err := NewCancelBooking(store, nil, testOptions()).Execute(context.Background(), b.ID)
	requireKind(t, err, httperr.KindConflict)
}

// ======================================================
// RATING
// ======================================================

func TestRateBooking_Bounds(t *testing.T) {
	store := bookingtest.Seeded()
	b := seedActive(store)
	uc := NewRateBooking(store, nil)
	ctx := context.Background()

	for _, r := range []*int{nil, ptr(0), ptr(6), ptr(-1)} {
		_, err := uc.Execute(ctx, b.ID, r)
		requireKind(t, err, httperr.KindValidation)
	}

	stored, _ := store.Booking(b.ID)
	assert.Nil(t, stored.Rating)
}

func TestRateBooking_SetsAndOverwrites(t *testing.T) {
	store := bookingtest.Seeded()
	b := seedActive(store)
	uc := NewRateBooking(store, nil)
	ctx := context.Background()

	got, err := uc.Execute(ctx, b.ID, ptr(3))
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	detail, err := NewGetBooking(store, store).Execute(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Rating)
	assert.Equal(t, 3, *detail.Rating)

	_, err = uc.Execute(ctx, b.ID, ptr(5))
	require.NoError(t, err)
	stored, _ := store.Booking(b.ID)
	assert.Equal(t, 5, *stored.Rating)
}

func TestRateBooking_NotFound(t *testing.T) {
	store := bookingtest.Seeded()

	_, err := NewRateBooking(store, nil).Execute(context.Background(), 404, ptr(4))
	requireKind(t, err, httperr.KindNotFound)
}

// ======================================================
// SLOTS
// ======================================================

func TestGetBookedSlots_OnePerNonCancelledBooking(t *testing.T) {
	store := bookingtest.Seeded()
	ctx := context.Background()

	first := seedActive(store)
	store.Put(models.Booking{SalonID: bookingtest.SalonID, Service: "2", BookingDate: "2024-06-01", BookingTime: "23:30", Duration: 60, Status: "pending"})
	store.Put(models.Booking{SalonID: bookingtest.SalonID, Service: "2", BookingDate: "2024-06-01", BookingTime: "15:00", Duration: 30, Status: "cancelled"})
	store.Put(models.Booking{SalonID: bookingtest.SalonID, Service: "2", BookingDate: "2024-06-02", BookingTime: "10:00", Duration: 30, Status: "active"})
	store.Put(models.Booking{SalonID: bookingtest.OtherSalonID, Service: "3", BookingDate: "2024-06-01", BookingTime: "10:00", Duration: 45, Status: "active"})

	uc := NewGetBookedSlots(store)
	slots, err := uc.Execute(ctx, bookingtest.SalonID, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{
		{Start: "10:00", End: "11:00", Duration: 60},
		{Start: "23:30", End: "00:30", Duration: 60},
	}, slots)

	cancel := NewCancelBooking(store, nil, testOptions())
	_, err = cancel.Execute(ctx, first.ID)
	require.NoError(t, err)
	_, err = cancel.Execute(ctx, 2)
	require.NoError(t, err)

	slots, err = uc.Execute(ctx, bookingtest.SalonID, "2024-06-01")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetBookedSlots_SkipsUnreadableRows(t *testing.T) {
	store := bookingtest.Seeded()
	store.Put(models.Booking{SalonID: bookingtest.SalonID, BookingDate: "2024-06-01", BookingTime: "meio-dia", Duration: 30, Status: "active"})
	store.Put(models.Booking{SalonID: bookingtest.SalonID, BookingDate: "2024-06-01", BookingTime: "09:15:00", Duration: 30, Status: "active"})

	slots, err := NewGetBookedSlots(store).Execute(context.Background(), bookingtest.SalonID, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{{Start: "09:15", End: "09:45", Duration: 30}}, slots)
}

func TestGetBookedSlots_InvalidInput(t *testing.T) {
	store := bookingtest.Seeded()
	uc := NewGetBookedSlots(store)
	ctx := context.Background()

	_, err := uc.Execute(ctx, 0, "2024-06-01")
	requireKind(t, err, httperr.KindValidation)

	_, err = uc.Execute(ctx, bookingtest.SalonID, "2024-6-1")
	requireKind(t, err, httperr.KindValidation)

	store.Err = errors.New("timeout")
	_, err = uc.Execute(ctx, bookingtest.SalonID, "2024-06-01")
	requireKind(t, err, httperr.KindStorage)
}

// ======================================================
// EXPIRY
// ======================================================

func TestExpirePendingBookings(t *testing.T) {
	store := bookingtest.Seeded()
	stale := store.Put(models.Booking{SalonID: bookingtest.SalonID, Status: "pending", BookingDate: "2024-06-01", BookingTime: "10:00", Duration: 30, CreatedAt: fixedNow.Add(-2 * time.Hour)})
	fresh := store.Put(models.Booking{SalonID: bookingtest.SalonID, Status: "pending", BookingDate: "2024-06-01", BookingTime: "11:00", Duration: 30, CreatedAt: fixedNow.Add(-5 * time.Minute)})
	paid := store.Put(models.Booking{SalonID: bookingtest.SalonID, Status: "active", BookingDate: "2024-06-01", BookingTime: "12:00", Duration: 30, CreatedAt: fixedNow.Add(-3 * time.Hour)})

	opts := testOptions()
	ctx := context.Background()

	n, err := NewExpirePendingBookings(store, nil, opts).Execute(ctx, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, n, "zero ttl disables expiry")

	opts.PendingTTL = 30 * time.Minute
	n, err = NewExpirePendingBookings(store, nil, opts).Execute(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for id, want := range map[uint]domain.Status{
		stale.ID: domain.StatusCancelled,
		fresh.ID: domain.StatusPending,
		paid.ID:  domain.StatusActive,
	} {
		got, _ := store.Booking(id)
		assert.Equal(t, string(want), got.Status, "booking %d", id)
	}
}
