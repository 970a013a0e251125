package booking

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// BookingInput is shared by direct creation and checkout. Amount and
// Duration are pointers so that zero stays distinguishable from absent.
type BookingInput struct {
	UserID     uint
	SalonID    uint
	ServiceIDs []uint
	Date       string
	Time       string
	Notes      string
	Amount     *float64
	Duration   *int
}

var (
	errNotFound = httperr.NotFoundErr("booking_not_found", "Agendamento não encontrado.")
	errConflict = httperr.Conflict("slot_unavailable", "Horário indisponível.")

	errInvalidDate = httperr.Validation("invalid_booking_date", "booking_date deve estar no formato AAAA-MM-DD.")
	errInvalidTime = httperr.Validation("invalid_booking_time", "booking_time deve estar no formato HH:MM.")
)

func (in BookingInput) validate() error {
	switch {
	case in.UserID == 0:
		return httperr.Validation("missing_user_id", "user_id é obrigatório.")
	case in.SalonID == 0:
		return httperr.Validation("missing_salon_id", "salon_id é obrigatório.")
	case len(in.ServiceIDs) == 0:
		return httperr.Validation("missing_service", "service é obrigatório.")
	case in.Date == "":
		return httperr.Validation("missing_booking_date", "booking_date é obrigatório.")
	case in.Time == "":
		return httperr.Validation("missing_booking_time", "booking_time é obrigatório.")
	case in.Amount == nil:
		return httperr.Validation("missing_amount", "amount é obrigatório.")
	}

	if _, err := domain.ParseDate(in.Date); err != nil {
		return errInvalidDate
	}
	if _, err := domain.ParseClock(in.Time); err != nil {
		return errInvalidTime
	}
	if *in.Amount < 0 || math.IsNaN(*in.Amount) || math.IsInf(*in.Amount, 0) {
		return httperr.Validation("invalid_amount", "amount inválido.")
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return httperr.Validation("invalid_duration", "duration deve ser positivo.")
	}

	return in.validateServices()
}

func (in BookingInput) validateServices() error {
	seen := make(map[uint]bool, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		if id == 0 {
			return httperr.Validation("service_not_found", "Serviço não encontrado.")
		}
		if seen[id] {
			return httperr.Validation("duplicate_service", "Serviço repetido na seleção.")
		}
		seen[id] = true
	}
	return nil
}

// ======================================================
// RESOLUTION
// ======================================================

// resolveServices returns the selected services in selection order. Every id
// must be an active service of the salon.
func resolveServices(
	ctx context.Context,
	cat catalog.Repository,
	salonID uint,
	ids []uint,
) ([]models.Service, error) {

	found, err := cat.ListServicesByIDs(ctx, ids)
	if err != nil {
		return nil, httperr.Storage(err)
	}

	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok || svc.SalonID != salonID || !svc.Active {
			return nil, httperr.Validation("service_not_found", "Serviço não encontrado.")
		}
		out = append(out, svc)
	}
	return out, nil
}

// draftBooking validates in against the catalog and builds an unsaved booking.
func draftBooking(
	ctx context.Context,
	cat catalog.Repository,
	in BookingInput,
	status domain.Status,
) (*models.Booking, []models.Service, error) {

	// --------------------------------------------------
	// 1. Campos obrigatórios
	// --------------------------------------------------
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	date, _ := domain.CanonicalDate(in.Date)
	clock, _ := domain.CanonicalClock(in.Time)

	// --------------------------------------------------
	// 2. Salão
	// --------------------------------------------------
	if _, err := cat.GetSalon(ctx, in.SalonID); err != nil {
		if errors.Is(err, catalog.ErrSalonNotFound) {
			return nil, nil, httperr.Validation("salon_not_found", "Salão não encontrado.")
		}
		return nil, nil, httperr.Storage(err)
	}

	// --------------------------------------------------
	// 3. Serviços
	// --------------------------------------------------
	services, err := resolveServices(ctx, cat, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, nil, err
	}

	var (
		totalMinutes int
		totalPrice   float64
	)
	for _, s := range services {
		totalMinutes += s.DurationMin
		totalPrice += s.Price
	}

	duration := totalMinutes
	if in.Duration != nil {
		duration = *in.Duration
	}
	if duration <= 0 {
		return nil, nil, httperr.Validation("invalid_duration", "duration deve ser positivo.")
	}

	// amount is trusted as sent
	if math.Abs(totalPrice-*in.Amount) >= 0.005 {
		logrus.WithFields(logrus.Fields{
			"salon_id":    in.SalonID,
			"services":    domain.EncodeServiceIDs(in.ServiceIDs),
			"amount":      *in.Amount,
			"catalog_sum": totalPrice,
		}).Warn("booking amount differs from service prices")
	}

	return &models.Booking{
		UserID:      in.UserID,
		SalonID:     in.SalonID,
		Service:     domain.EncodeServiceIDs(in.ServiceIDs),
		BookingDate: date,
		BookingTime: clock,
		Duration:    duration,
		Status:      string(status),
		Amount:      *in.Amount,
		Notes:       in.Notes,
	}, services, nil
}

// ======================================================
// PERSISTENCE
// ======================================================

func insertBooking(
	ctx context.Context,
	ledger domain.Repository,
	b *models.Booking,
	enforceNoOverlap bool,
) error {

	var err error
	if enforceNoOverlap {
		err = ledger.CreateNoOverlap(ctx, b)
	} else {
		err = ledger.Create(ctx, b)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSlotConflict),
		httperr.IsExclusionConflict(err),
		httperr.IsSerializationFailure(err):
		return errConflict
	default:
		return httperr.Storage(err)
	}
}

// loadBooking maps a missing booking to NotFound.
func loadBooking(ctx context.Context, ledger domain.Repository, id uint) (*models.Booking, error) {
	b, err := ledger.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, httperr.Storage(err)
	}
	return b, nil
}
