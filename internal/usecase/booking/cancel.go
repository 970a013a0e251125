package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type CancelBooking struct {
	ledger domain.Repository
	audit  *audit.Dispatcher
	opts   Options
}

func NewCancelBooking(
	ledger domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *CancelBooking {
	return &CancelBooking{
		ledger: ledger,
		audit:  audit,
		opts:   opts,
	}
}

// Execute cancels the booking and returns its resulting status. Cancelling
// twice is not an error.
func (uc *CancelBooking) Execute(ctx context.Context, id uint) (domain.Status, error) {
	b, err := loadBooking(ctx, uc.ledger, id)
	if err != nil {
		return "", err
	}

	changed, err := domain.Cancel(b, uc.opts.now())
	if err != nil {
		return "", err
	}
	if !changed {
		return domain.Status(b.Status), nil
	}

	if err := uc.ledger.Update(ctx, b); err != nil {
		return "", httperr.Storage(err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   audit.ActorFrom(ctx),
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return domain.Status(b.Status), nil
}
