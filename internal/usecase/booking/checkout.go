package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CheckoutInput struct {
	BookingInput

	// IdempotencyKey is optional. Retries carrying the same key reuse the
	// pending booking created by the first attempt.
	IdempotencyKey string
}

var errNoSession = errors.New("gateway returned no session id")

func gatewayFailure(cause error) error {
	return httperr.Gateway("payment_gateway_error", "Não foi possível iniciar o pagamento.", cause)
}

// ======================================================
// USE CASE
// ======================================================

type CreateCheckoutSession struct {
	ledger  domain.Repository
	catalog catalog.Repository
	gateway domain.PaymentGateway
	audit   *audit.Dispatcher
	opts    Options
}

func NewCreateCheckoutSession(
	ledger domain.Repository,
	catalog catalog.Repository,
	gateway domain.PaymentGateway,
	audit *audit.Dispatcher,
	opts Options,
) *CreateCheckoutSession {
	return &CreateCheckoutSession{
		ledger:  ledger,
		catalog: catalog,
		gateway: gateway,
		audit:   audit,
		opts:    opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute inserts a pending booking and then opens a payment session for
// it. A gateway failure leaves the pending booking in place.
func (uc *CreateCheckoutSession) Execute(
	ctx context.Context,
	in CheckoutInput,
) (*dto.CheckoutSession, error) {

	// --------------------------------------------------
	// 1. Validação
	// --------------------------------------------------
	draft, _, err := draftBooking(ctx, uc.catalog, in.BookingInput, domain.StatusPending)
	if err != nil {
		logrus.WithError(err).WithField("salon_id", in.SalonID).Warn("checkout rejected")
		return nil, err
	}

	if uc.gateway == nil {
		return nil, httperr.Gateway(
			"gateway_not_configured",
			"Pagamento indisponível no momento.",
			errors.New("payment gateway not configured"),
		)
	}

	// --------------------------------------------------
	// 2. Agendamento pendente
	// --------------------------------------------------
	b, err := uc.pendingBooking(ctx, draft, strings.TrimSpace(in.IdempotencyKey))
	if err != nil {
		return nil, err
	}

	entry := logrus.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"salon_id":   b.SalonID,
	})

	// --------------------------------------------------
	// 3. Sessão de pagamento
	// --------------------------------------------------
	reference := domain.BuildReference(b.ID, uc.opts.now())
	base := uc.opts.baseURL()

	req := domain.CheckoutRequest{
		BookingID:       b.ID,
		Reference:       reference,
		Title:           fmt.Sprintf("Agendamento #%d", b.ID),
		Description:     fmt.Sprintf("%s %s", b.BookingDate, b.BookingTime),
		Amount:          math.Round(b.Amount*100) / 100,
		Currency:        uc.opts.currency(),
		ReturnURL:       fmt.Sprintf("%s/payments/%d/return", base, b.ID),
		NotificationURL: base + "/bookings/payment-notifications",
	}

	gwCtx, cancel := context.WithTimeout(ctx, uc.opts.paymentTimeout())
	defer cancel()

	session, err := uc.gateway.CreateCheckoutSession(gwCtx, req)
	if err != nil {
		entry.WithError(err).Error("checkout session failed, pending booking kept")
		return nil, gatewayFailure(err)
	}
	if session == nil || strings.TrimSpace(session.ID) == "" {
		entry.Error("checkout session without id, pending booking kept")
		return nil, gatewayFailure(errNoSession)
	}

	// --------------------------------------------------
	// 4. Vincula a sessão
	// --------------------------------------------------
	b.PaymentSessionID = session.ID
	b.PaymentReference = reference
	// the session exists at the gateway, the caller still gets it
	if stored, err := uc.ledger.UpdateIfStatus(ctx, b, domain.StatusPending); err != nil {
		entry.WithError(err).Error("failed storing payment session on booking")
	} else if !stored {
		entry.Warn("booking settled before its payment session was stored")
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   audit.ActorFrom(ctx),
		Action:   "checkout_started",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"session_id": session.ID,
			"reference":  reference,
			"amount":     req.Amount,
		},
	})

	entry.WithField("session_id", session.ID).Info("checkout session created")

	return &dto.CheckoutSession{
		SessionID:   session.ID,
		BookingID:   b.ID,
		CheckoutURL: session.URL,
	}, nil
}

// pendingBooking inserts draft, or returns the pending booking already bound
// to key.
func (uc *CreateCheckoutSession) pendingBooking(
	ctx context.Context,
	draft *models.Booking,
	key string,
) (*models.Booking, error) {

	if key == "" {
		if err := insertBooking(ctx, uc.ledger, draft, uc.opts.EnforceNoOverlap); err != nil {
			return nil, err
		}
		return draft, nil
	}

	if existing, err := uc.byKey(ctx, draft, key); err != nil || existing != nil {
		return existing, err
	}

	draft.IdempotencyKey = &key
	err := insertBooking(ctx, uc.ledger, draft, uc.opts.EnforceNoOverlap)
	if err == nil {
		return draft, nil
	}

	// a concurrent retry won the insert
	if httperr.IsUniqueViolation(err) {
		existing, lookupErr := uc.byKey(ctx, draft, key)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil {
			return existing, nil
		}
	}
	return nil, err
}

// byKey returns the caller's pending booking for key. A key bound to a
// settled booking, or to a different request, is a Conflict.
func (uc *CreateCheckoutSession) byKey(
	ctx context.Context,
	draft *models.Booking,
	key string,
) (*models.Booking, error) {

	existing, err := uc.ledger.GetByIdempotencyKey(ctx, draft.UserID, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, httperr.Storage(err)
	}
	if existing.Status != string(domain.StatusPending) {
		return nil, httperr.Conflict("idempotency_key_reused", "Chave de idempotência já utilizada.")
	}
	if !sameRequest(existing, draft) {
		logrus.WithField("booking_id", existing.ID).Warn("idempotency key sent with a different booking")
		return nil, httperr.Conflict("idempotency_key_mismatch", "Chave de idempotência usada em outro agendamento.")
	}

	logrus.WithField("booking_id", existing.ID).Info("checkout retry reusing pending booking")
	return existing, nil
}

func sameRequest(stored, draft *models.Booking) bool {
	return stored.SalonID == draft.SalonID &&
		stored.Service == draft.Service &&
		stored.BookingDate == draft.BookingDate &&
		stored.BookingTime == draft.BookingTime &&
		stored.Duration == draft.Duration &&
		math.Abs(stored.Amount-draft.Amount) < 0.005
}
