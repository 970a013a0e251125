package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type GetBookedSlots struct {
	ledger domain.Repository
}

func NewGetBookedSlots(ledger domain.Repository) *GetBookedSlots {
	return &GetBookedSlots{ledger: ledger}
}

// Execute returns one busy interval per non-cancelled booking of the salon
// on date, in storage order. Overlapping intervals are not merged.
func (uc *GetBookedSlots) Execute(ctx context.Context, salonID uint, date string) ([]domain.Slot, error) {
	if salonID == 0 {
		return nil, httperr.Validation("invalid_salon_id", "salon_id inválido.")
	}
	date, err := domain.CanonicalDate(date)
	if err != nil {
		return nil, httperr.Validation("invalid_booking_date", "date deve estar no formato AAAA-MM-DD.")
	}

	bookings, err := uc.ledger.ListForDay(ctx, salonID, date)
	if err != nil {
		return nil, httperr.Storage(err)
	}

	slots := make([]domain.Slot, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == string(domain.StatusCancelled) {
			continue
		}
		slot, err := domain.SlotFor(b)
		if err != nil {
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("skipping unreadable booking")
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
