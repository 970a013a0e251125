package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func TestGetBooking_RoundTripResolvesNames(t *testing.T) {
	store := bookingtest.Seeded()
	ctx := context.Background()

	in := validInput()
	in.ServiceIDs = []uint{bookingtest.ServiceBlowDry, bookingtest.ServiceCut}
	created, err := NewCreateBooking(store, store, nil, testOptions()).Execute(ctx, in)
	require.NoError(t, err)

	detail, err := NewGetBooking(store, store).Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.Equal(t, "Studio Bela", detail.SalonName)
	assert.Equal(t, "Escova,Corte", detail.ServiceName)
}

func TestGetBooking_SkipsUnresolvedServices(t *testing.T) {
	store := bookingtest.Seeded()
	b := store.Put(models.Booking{
		SalonID: bookingtest.SalonID, UserID: bookingtest.UserID,
		Service: "99,1", BookingDate: "2024-06-01", BookingTime: "10:00", Duration: 60, Status: "active",
	})

	detail, err := NewGetBooking(store, store).Execute(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corte", detail.ServiceName)
}

func TestGetBooking_NotFound(t *testing.T) {
	store := bookingtest.Seeded()

	_, err := NewGetBooking(store, store).Execute(context.Background(), 404)
	requireKind(t, err, httperr.KindNotFound)
}

func seedList(store *bookingtest.Store) {
	store.Put(models.Booking{SalonID: bookingtest.SalonID, UserID: bookingtest.UserID, Service: "1", BookingDate: "2024-06-01", BookingTime: "10:00", Duration: 60, Status: "active"})
	store.Put(models.Booking{SalonID: bookingtest.OtherSalonID, UserID: bookingtest.UserID, Service: "3", BookingDate: "2024-06-01", BookingTime: "11:00", Duration: 45, Status: "pending"})
	store.Put(models.Booking{SalonID: bookingtest.SalonID, UserID: bookingtest.UserID, Service: "2,1", BookingDate: "2024-06-02", BookingTime: "09:00", Duration: 90, Status: "cancelled"})
}

func TestListBookings_AllInInsertionOrder(t *testing.T) {
	store := bookingtest.Seeded()
	seedList(store)

	items, err := NewListBookings(store, store).Execute(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, []uint{1, 2, 3}, []uint{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "Ana Souza", items[0].UserName)
	assert.Equal(t, "Studio Bela", items[0].SalonName)
	assert.Equal(t, "Corte", items[0].ServiceName)
	assert.Equal(t, "Unhas & Cia", items[1].SalonName)
	assert.Equal(t, "Manicure", items[1].ServiceName)
	assert.Equal(t, "Escova,Corte", items[2].ServiceName)
}

func TestListBookings_Filters(t *testing.T) {
	store := bookingtest.Seeded()
	seedList(store)
	uc := NewListBookings(store, store)
	ctx := context.Background()

	bySalon, err := uc.Execute(ctx, ListFilter{SalonID: bookingtest.SalonID})
	require.NoError(t, err)
	assert.Len(t, bySalon, 2)

	byStatus, err := uc.Execute(ctx, ListFilter{Status: "Pending"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, bookingtest.OtherSalonID, byStatus[0].SalonID)

	byDate, err := uc.Execute(ctx, ListFilter{Date: "2024-06-02"})
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	empty, err := uc.Execute(ctx, ListFilter{UserID: 999})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListBookings_InvalidFilters(t *testing.T) {
	store := bookingtest.Seeded()
	uc := NewListBookings(store, store)

	_, err := uc.Execute(context.Background(), ListFilter{Status: "archived"})
	requireKind(t, err, httperr.KindValidation)

	_, err = uc.Execute(context.Background(), ListFilter{Date: "junho"})
	requireKind(t, err, httperr.KindValidation)
}
