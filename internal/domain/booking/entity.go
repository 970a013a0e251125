package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves b to the target status and stamps the matching timestamp.
// It reports whether anything changed.
func Transition(b *models.Booking, to Status, now time.Time) (bool, error) {
	from := Status(b.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	b.Status = string(to)
	switch to {
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}
	return true, nil
}

// Cancel is idempotent on an already cancelled booking.
func Cancel(b *models.Booking, now time.Time) (bool, error) {
	return Transition(b, StatusCancelled, now)
}

func Activate(b *models.Booking, now time.Time) (bool, error) {
	return Transition(b, StatusActive, now)
}
