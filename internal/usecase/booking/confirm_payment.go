package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ConfirmPayment struct {
	ledger  domain.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
	opts    Options
}

func NewConfirmPayment(
	ledger domain.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
	opts Options,
) *ConfirmPayment {
	return &ConfirmPayment{
		ledger:  ledger,
		gateway: gateway,
		audit:   audit,
		opts:    opts,
	}
}

// Execute settles the pending booking a payment refers to. It returns the
// booking, or nil when the payment does not reference a known booking.
// Repeated notifications for a settled booking change nothing.
func (uc *ConfirmPayment) Execute(ctx context.Context, paymentID string) (*models.Booking, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, httperr.Validation("missing_payment_id", "payment id é obrigatório.")
	}
	if uc.gateway == nil {
		return nil, httperr.Gateway(
			"gateway_not_configured",
			"Pagamento indisponível no momento.",
			errors.New("payment gateway not configured"),
		)
	}

	entry := logrus.WithField("payment_id", paymentID)

	// --------------------------------------------------
	// 1. Consulta o pagamento
	// --------------------------------------------------
	gwCtx, cancel := context.WithTimeout(ctx, uc.opts.paymentTimeout())
	defer cancel()

	payment, err := uc.gateway.GetPayment(gwCtx, paymentID)
	if err != nil {
		entry.WithError(err).Error("payment lookup failed")
		return nil, gatewayFailure(err)
	}

	bookingID, ok := domain.ParseReference(payment.Reference)
	if !ok {
		entry.WithField("reference", payment.Reference).Warn("payment without booking reference ignored")
		return nil, nil
	}
	entry = entry.WithField("booking_id", bookingID)

	// --------------------------------------------------
	// 2. Agendamento
	// --------------------------------------------------
	b, err := uc.ledger.GetByID(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		entry.Warn("payment for unknown booking ignored")
		return nil, nil
	}
	if err != nil {
		return nil, httperr.Storage(err)
	}

	if b.Status != string(domain.StatusPending) {
		entry.WithField("status", b.Status).Info("booking already settled")
		return b, nil
	}

	// --------------------------------------------------
	// 3. Transição
	// --------------------------------------------------
	var action string
	now := uc.opts.now()

	switch payment.Status {
	case domain.PaymentApproved:
		_, err = domain.Activate(b, now)
		action = "payment_approved"
	case domain.PaymentRejected, domain.PaymentCanceled, domain.PaymentRefunded:
		_, err = domain.Cancel(b, now)
		action = "payment_failed"
	default:
		entry.WithField("payment_status", payment.Status).Info("payment not final yet")
		return b, nil
	}
	if err != nil {
		return nil, err
	}

	stored, err := uc.ledger.UpdateIfStatus(ctx, b, domain.StatusPending)
	if err != nil {
		return nil, httperr.Storage(err)
	}
	if !stored {
		// settled concurrently, by another notification or by expiry
		entry.Info("booking settled concurrently")
		return loadBooking(ctx, uc.ledger, b.ID)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"payment_id":     paymentID,
			"payment_status": payment.Status,
		},
	})

	entry.WithField("status", b.Status).Info("booking settled by payment")
	return b, nil
}
