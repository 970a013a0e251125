package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type ExpirePendingBookings struct {
	ledger domain.Repository
	audit  *audit.Dispatcher
	opts   Options
}

func NewExpirePendingBookings(
	ledger domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *ExpirePendingBookings {
	return &ExpirePendingBookings{
		ledger: ledger,
		audit:  audit,
		opts:   opts,
	}
}

// Execute cancels pending bookings created more than PendingTTL before now
// and returns how many it cancelled. A zero TTL disables expiry.
func (uc *ExpirePendingBookings) Execute(ctx context.Context, now time.Time) (int, error) {
	if uc.opts.PendingTTL <= 0 {
		return 0, nil
	}

	stale, err := uc.ledger.ListPendingBefore(ctx, now.Add(-uc.opts.PendingTTL))
	if err != nil {
		return 0, httperr.Storage(err)
	}

	expired := 0
	for i := range stale {
		b := &stale[i]
		entry := logrus.WithField("booking_id", b.ID)

		changed, err := domain.Cancel(b, now)
		if err != nil || !changed {
			continue
		}
		stored, err := uc.ledger.UpdateIfStatus(ctx, b, domain.StatusPending)
		if err != nil {
			entry.WithError(err).Error("failed expiring pending booking")
			continue
		}
		if !stored {
			entry.Info("pending booking settled before expiry")
			continue
		}

		uc.audit.Dispatch(audit.Event{
			SalonID:  b.SalonID,
			Action:   "booking_expired",
			Entity:   "booking",
			EntityID: &b.ID,
		})
		expired++
	}

	if expired > 0 {
		logrus.WithField("count", expired).Info("pending bookings expired")
	}
	return expired, nil
}
