package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusActive, true},
		{StatusPending, StatusCancelled, true},
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusCancelled, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusPending, StatusCompleted, false},
		{StatusCompleted, StatusActive, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusActive, false},
		{StatusActive, StatusPending, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s", tc.from, tc.to)
		assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("archived")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestCancel_IsIdempotent(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusActive)}

	changed, err := Cancel(b, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)

	changed, err = Cancel(b, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, *b.CancelledAt)
}

func TestTransition_CompletedStampsTime(t *testing.T) {
	now := time.Now()
	b := &models.Booking{Status: string(StatusActive)}

	_, err := Transition(b, StatusCompleted, now)
	require.NoError(t, err)
	require.NotNil(t, b.CompletedAt)

	_, err = Cancel(b, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
	assert.Equal(t, string(StatusCompleted), b.Status)
}
