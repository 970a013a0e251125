package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ListFilter is the unparsed query of the list endpoint. Zero values mean
// "no filter".
type ListFilter struct {
	SalonID uint
	UserID  uint
	Status  string
	Date    string
}

type ListBookings struct {
	ledger  domain.Repository
	catalog catalog.Repository
}

func NewListBookings(ledger domain.Repository, catalog catalog.Repository) *ListBookings {
	return &ListBookings{ledger: ledger, catalog: catalog}
}

func (uc *ListBookings) Execute(ctx context.Context, f ListFilter) ([]dto.BookingListItem, error) {
	filter := domain.ListFilter{
		SalonID: f.SalonID,
		UserID:  f.UserID,
	}

	if f.Status != "" {
		st, err := domain.ParseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	if f.Date != "" {
		date, err := domain.CanonicalDate(f.Date)
		if err != nil {
			return nil, httperr.Validation("invalid_booking_date", "date deve estar no formato AAAA-MM-DD.")
		}
		filter.Date = date
	}

	rows, err := uc.ledger.List(ctx, filter)
	if err != nil {
		return nil, httperr.Storage(err)
	}

	bookings := make([]models.Booking, 0, len(rows))
	for _, r := range rows {
		bookings = append(bookings, r.Booking)
	}
	names, err := resolveNames(ctx, uc.catalog, bookings)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BookingListItem{
			Booking:     r.Booking,
			UserName:    r.UserName,
			SalonName:   r.SalonName,
			ServiceName: names[r.ID],
		})
	}
	return out, nil
}
