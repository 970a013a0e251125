package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// EditBookingInput holds one pointer per editable field. A nil field keeps
// the stored value; a non-nil field replaces it, even when empty.
type EditBookingInput struct {
	ServiceIDs *[]uint
	Date       *string
	Time       *string
	Duration   *int
	Notes      *string
	Status     *string

	// immutable, rejected when present
	UserID  *uint
	SalonID *uint
	Amount  *float64
}

// ======================================================
// USE CASE
// ======================================================

type EditBooking struct {
	ledger  domain.Repository
	catalog catalog.Repository
	audit   *audit.Dispatcher
	opts    Options
}

func NewEditBooking(
	ledger domain.Repository,
	catalog catalog.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *EditBooking {
	return &EditBooking{
		ledger:  ledger,
		catalog: catalog,
		audit:   audit,
		opts:    opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditBooking) Execute(
	ctx context.Context,
	id uint,
	in EditBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Campos imutáveis
	// --------------------------------------------------
	switch {
	case in.UserID != nil:
		return nil, httperr.Validation("immutable_user_id", "user_id não pode ser alterado.")
	case in.SalonID != nil:
		return nil, httperr.Validation("immutable_salon_id", "salon_id não pode ser alterado.")
	case in.Amount != nil:
		return nil, httperr.Validation("immutable_amount", "amount não pode ser alterado.")
	}

	b, err := loadBooking(ctx, uc.ledger, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	scheduleChanged := false

	// --------------------------------------------------
	// 2. Serviços
	// --------------------------------------------------
	if in.ServiceIDs != nil {
		ids := *in.ServiceIDs
		if len(ids) == 0 {
			return nil, httperr.Validation("missing_service", "service é obrigatório.")
		}
		probe := BookingInput{ServiceIDs: ids}
		if err := probe.validateServices(); err != nil {
			return nil, err
		}
		if _, err := resolveServices(ctx, uc.catalog, b.SalonID, ids); err != nil {
			return nil, err
		}
		b.Service = domain.EncodeServiceIDs(ids)
		changed["service"] = b.Service
	}

	// --------------------------------------------------
	// 3. Data / hora / duração
	// --------------------------------------------------
	if in.Date != nil {
		date, err := domain.CanonicalDate(*in.Date)
		if err != nil {
			return nil, errInvalidDate
		}
		scheduleChanged = scheduleChanged || date != b.BookingDate
		b.BookingDate = date
		changed["booking_date"] = b.BookingDate
	}
	if in.Time != nil {
		clock, err := domain.CanonicalClock(*in.Time)
		if err != nil {
			return nil, errInvalidTime
		}
		scheduleChanged = scheduleChanged || clock != b.BookingTime
		b.BookingTime = clock
		changed["booking_time"] = b.BookingTime
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return nil, httperr.Validation("invalid_duration", "duration deve ser positivo.")
		}
		scheduleChanged = scheduleChanged || *in.Duration != b.Duration
		b.Duration = *in.Duration
		changed["duration"] = b.Duration
	}

	if in.Notes != nil {
		b.Notes = *in.Notes
		changed["notes"] = b.Notes
	}

	// --------------------------------------------------
	// 4. Status
	// --------------------------------------------------
	if in.Status != nil {
		to, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		from := b.Status
		if _, err := domain.Transition(b, to, uc.opts.now()); err != nil {
			logrus.WithFields(logrus.Fields{
				"booking_id": b.ID,
				"from":       from,
				"to":         to,
			}).Warn("booking transition rejected")
			return nil, err
		}
		changed["status"] = b.Status
	}

	// --------------------------------------------------
	// 5. Sobreposição
	// --------------------------------------------------
	if uc.opts.EnforceNoOverlap && scheduleChanged && domain.Status(b.Status).Blocking() {
		day, err := uc.ledger.ListForDay(ctx, b.SalonID, b.BookingDate)
		if err != nil {
			return nil, httperr.Storage(err)
		}
		hit, err := domain.FindOverlap(*b, day)
		if err != nil {
			return nil, httperr.Storage(err)
		}
		if hit != nil {
			return nil, errConflict
		}
	}

	if err := uc.ledger.Update(ctx, b); err != nil {
		return nil, httperr.Storage(err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   audit.ActorFrom(ctx),
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: changed,
	})

	return b, nil
}
