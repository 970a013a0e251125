package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	MinRating = 1
	MaxRating = 5
)

type RateBooking struct {
	ledger domain.Repository
	audit  *audit.Dispatcher
}

func NewRateBooking(ledger domain.Repository, audit *audit.Dispatcher) *RateBooking {
	return &RateBooking{ledger: ledger, audit: audit}
}

// Execute sets the rating, replacing any previous one.
func (uc *RateBooking) Execute(ctx context.Context, id uint, rating *int) (int, error) {
	if rating == nil {
		return 0, httperr.Validation("missing_rating", "rating é obrigatório.")
	}
	if *rating < MinRating || *rating > MaxRating {
		return 0, httperr.Validation("invalid_rating", "rating deve estar entre 1 e 5.")
	}

	b, err := loadBooking(ctx, uc.ledger, id)
	if err != nil {
		return 0, err
	}

	value := *rating
	b.Rating = &value
	if err := uc.ledger.Update(ctx, b); err != nil {
		return 0, httperr.Storage(err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   audit.ActorFrom(ctx),
		Action:   "booking_rated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"rating": value},
	})

	return value, nil
}
