package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
	ErrEmptySession                    = errors.New("mercado pago returned no preference id")
	ErrEmptyPayment                    = errors.New("mercado pago returned no payment")
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway opens checkout preferences and looks payments up. In
// mock mode it answers locally and every session it created is approved.
type MercadoPagoGateway struct {
	preferences preferenceCreator
	payments    paymentGetter
	sandbox     bool

	mockMode bool
	mockBase string
	mu       sync.Mutex
	mockRefs map[string]string
}

var gatewayLog = logrus.WithField("component", "payment_gateway")

func NewMercadoPagoGateway(accessToken string, mock bool, publicBaseURL string) (*MercadoPagoGateway, error) {
	if mock {
		gatewayLog.Info("mock mode enabled")
		return &MercadoPagoGateway{
			mockMode: true,
			mockBase: strings.TrimRight(publicBaseURL, "/"),
			mockRefs: map[string]string{},
		}, nil
	}

	if accessToken == "" {
		gatewayLog.Warn("missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		gatewayLog.WithError(err).Error("failed creating sdk config")
		return nil, err
	}
	gatewayLog.Info("Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		sandbox:     strings.HasPrefix(accessToken, "TEST-"),
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckoutSession(
	ctx context.Context,
	req domain.CheckoutRequest,
) (*domain.CheckoutSession, error) {

	entry := gatewayLog.WithFields(logrus.Fields{
		"booking_id": req.BookingID,
		"reference":  req.Reference,
	})

	if g != nil && g.mockMode {
		id := "mock-" + uuid.NewString()
		g.mu.Lock()
		g.mockRefs[id] = req.Reference
		g.mu.Unlock()

		entry.WithField("session_id", id).Info("mock checkout session created")
		return &domain.CheckoutSession{
			ID:  id,
			URL: fmt.Sprintf("%s/mock-checkout/%s", g.mockBase, id),
		}, nil
	}

	if g == nil || g.preferences == nil {
		entry.Error("gateway not configured")
		return nil, ErrMercadoPagoGatewayNotConfigured
	}

	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          strconv.FormatUint(uint64(req.BookingID), 10),
				Title:       req.Title,
				Description: req.Description,
				CurrencyID:  req.Currency,
				Quantity:    1,
				UnitPrice:   req.Amount,
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.ReturnURL,
			Pending: req.ReturnURL,
			Failure: req.ReturnURL,
		},
		AutoReturn:        "approved",
		ExternalReference: req.Reference,
		NotificationURL:   req.NotificationURL,
	}

	entry.WithField("amount", req.Amount).Info("create preference start")

	resp, err := g.preferences.Create(ctx, request)
	if err != nil {
		entry.WithError(err).Error("sdk create preference failed")
		return nil, err
	}
	if resp == nil || resp.ID == "" {
		entry.Error("preference response without id")
		return nil, ErrEmptySession
	}

	url := resp.InitPoint
	if g.sandbox && resp.SandboxInitPoint != "" {
		url = resp.SandboxInitPoint
	}

	entry.WithField("session_id", resp.ID).Info("create preference success")
	return &domain.CheckoutSession{ID: resp.ID, URL: url}, nil
}

func (g *MercadoPagoGateway) GetPayment(
	ctx context.Context,
	paymentID string,
) (*domain.PaymentStatus, error) {

	if g != nil && g.mockMode {
		g.mu.Lock()
		ref, ok := g.mockRefs[paymentID]
		g.mu.Unlock()
		if !ok {
			return nil, fmt.Errorf("mock payment %q not found", paymentID)
		}
		return &domain.PaymentStatus{
			PaymentID: paymentID,
			Status:    domain.PaymentApproved,
			Reference: ref,
		}, nil
	}

	if g == nil || g.payments == nil {
		return nil, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q: %w", paymentID, err)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		gatewayLog.WithError(err).WithField("payment_id", id).Error("sdk get payment failed")
		return nil, err
	}
	if resp == nil {
		gatewayLog.WithField("payment_id", id).Error("payment response empty")
		return nil, ErrEmptyPayment
	}

	return &domain.PaymentStatus{
		PaymentID: strconv.Itoa(resp.ID),
		Status:    resp.Status,
		Reference: resp.ExternalReference,
	}, nil
}

var _ domain.PaymentGateway = (*MercadoPagoGateway)(nil)
