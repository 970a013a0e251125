package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	ledger  domain.Repository
	catalog catalog.Repository
	audit   *audit.Dispatcher
	opts    Options
}

func NewCreateBooking(
	ledger domain.Repository,
	catalog catalog.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *CreateBooking {
	return &CreateBooking{
		ledger:  ledger,
		catalog: catalog,
		audit:   audit,
		opts:    opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in BookingInput,
) (*models.Booking, error) {

	b, _, err := draftBooking(ctx, uc.catalog, in, domain.InitialStatus())
	if err != nil {
		logrus.WithError(err).WithField("salon_id", in.SalonID).Warn("booking rejected")
		return nil, err
	}

	if err := insertBooking(ctx, uc.ledger, b, uc.opts.EnforceNoOverlap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   audit.ActorFrom(ctx),
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"date":    b.BookingDate,
			"time":    b.BookingTime,
			"service": b.Service,
		},
	})

	return b, nil
}
