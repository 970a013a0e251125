package booking

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type GetBooking struct {
	ledger  domain.Repository
	catalog catalog.Repository
}

func NewGetBooking(ledger domain.Repository, catalog catalog.Repository) *GetBooking {
	return &GetBooking{ledger: ledger, catalog: catalog}
}

func (uc *GetBooking) Execute(ctx context.Context, id uint) (*dto.BookingDetail, error) {
	b, err := loadBooking(ctx, uc.ledger, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.BookingDetail{Booking: *b}

	salon, err := uc.catalog.GetSalon(ctx, b.SalonID)
	switch {
	case err == nil:
		detail.SalonName = salon.Name
	case errors.Is(err, catalog.ErrSalonNotFound):
	default:
		return nil, httperr.Storage(err)
	}

	names, err := resolveNames(ctx, uc.catalog, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	detail.ServiceName = names[b.ID]

	return detail, nil
}

// resolveNames loads every service referenced by bookings in one lookup and
// returns the joined service names per booking id.
func resolveNames(
	ctx context.Context,
	cat catalog.Repository,
	bookings []models.Booking,
) (map[uint]string, error) {

	selections := make(map[uint][]uint, len(bookings))
	seen := map[uint]bool{}
	var all []uint

	for _, b := range bookings {
		ids, err := domain.ParseServiceIDs(b.Service)
		if err != nil {
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("unreadable service selection")
			continue
		}
		selections[b.ID] = ids
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
			}
		}
	}

	names := make(map[uint]string, len(bookings))
	if len(all) == 0 {
		return names, nil
	}

	services, err := cat.ListServicesByIDs(ctx, all)
	if err != nil {
		return nil, httperr.Storage(err)
	}

	for id, ids := range selections {
		names[id] = domain.ServiceNames(ids, services)
	}
	return names, nil
}
