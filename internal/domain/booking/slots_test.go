package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func booking(id uint, clock string, minutes int, status Status) models.Booking {
	return models.Booking{
		ID:          id,
		SalonID:     7,
		BookingDate: "2024-06-01",
		BookingTime: clock,
		Duration:    minutes,
		Status:      string(status),
	}
}

func TestSlotFor(t *testing.T) {
	s, err := SlotFor(booking(1, "10:00", 60, StatusActive))
	require.NoError(t, err)
	assert.Equal(t, Slot{Start: "10:00", End: "11:00", Duration: 60}, s)

	s, err = SlotFor(booking(2, "10:30:00", 30, StatusActive))
	require.NoError(t, err)
	assert.Equal(t, Slot{Start: "10:30", End: "11:00", Duration: 30}, s)

	s, err = SlotFor(booking(3, "23:30", 60, StatusActive))
	require.NoError(t, err)
	assert.Equal(t, "00:30", s.End)

	_, err = SlotFor(booking(4, "25:99", 30, StatusActive))
	assert.Error(t, err)
}

func TestInterval_Overlaps(t *testing.T) {
	a, _ := IntervalOf(booking(1, "10:00", 60, StatusActive))
	b, _ := IntervalOf(booking(2, "10:30", 30, StatusActive))
	c, _ := IntervalOf(booking(3, "11:00", 30, StatusActive))

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "touching intervals do not overlap")
}

func TestFindOverlap(t *testing.T) {
	existing := []models.Booking{
		booking(1, "09:00", 60, StatusCancelled),
		booking(2, "10:00", 60, StatusCompleted),
		booking(3, "12:00", 60, StatusPending),
	}

	hit, err := FindOverlap(booking(0, "09:30", 30, StatusActive), existing)
	require.NoError(t, err)
	assert.Nil(t, hit, "cancelled and completed bookings do not block")

	hit, err = FindOverlap(booking(0, "12:30", 60, StatusActive), existing)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, uint(3), hit.ID)

	hit, err = FindOverlap(booking(3, "12:15", 60, StatusPending), existing)
	require.NoError(t, err)
	assert.Nil(t, hit, "a booking never overlaps itself")
}

func TestServiceIDs(t *testing.T) {
	ids, err := ParseServiceIDs(" 3, 1,,7 ")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 7}, ids)
	assert.Equal(t, "3,1,7", EncodeServiceIDs(ids))

	_, err = ParseServiceIDs("1,x")
	assert.Error(t, err)

	names := ServiceNames([]uint{3, 1, 9}, []models.Service{
		{ID: 1, Name: "Corte"},
		{ID: 3, Name: "Escova"},
	})
	assert.Equal(t, "Escova,Corte", names)
}

func TestReference(t *testing.T) {
	id, ok := ParseReference("booking-42-1717232400000")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "booking-x-1", "order-42-1", "booking-42", "booking-0-1"} {
		_, ok := ParseReference(bad)
		assert.False(t, ok, bad)
	}
}

func TestCanonicalDateAndClock(t *testing.T) {
	d, err := CanonicalDate(" 2024-06-01\t")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", d)

	for in, want := range map[string]string{"9:30": "09:30", " 10:00 ": "10:00", "23:15:00": "23:15"} {
		got, err := CanonicalClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err = CanonicalDate("2024-6-1")
	assert.Error(t, err)
	_, err = CanonicalClock("25:00")
	assert.Error(t, err)
}
