package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
)

type fakePreferences struct {
	got  preference.Request
	resp *preference.Response
	err  error
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakePayments struct {
	gotID int
	resp  *payment.Response
	err   error
}

func (f *fakePayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.gotID = id
	return f.resp, f.err
}

func checkoutRequest() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		BookingID:       12,
		Reference:       "booking-12-1717232400000",
		Title:           "Agendamento #12",
		Amount:          130.5,
		Currency:        "BRL",
		ReturnURL:       "https://api.example.com/payments/12/return",
		NotificationURL: "https://api.example.com/bookings/payment-notifications",
	}
}

func TestCreateCheckoutSession_BuildsPreference(t *testing.T) {
	prefs := &fakePreferences{resp: &preference.Response{ID: "pref-1", InitPoint: "https://mp/init"}}
	g := &MercadoPagoGateway{preferences: prefs}

	session, err := g.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "pref-1", session.ID)
	assert.Equal(t, "https://mp/init", session.URL)

	require.Len(t, prefs.got.Items, 1)
	item := prefs.got.Items[0]
	assert.Equal(t, "12", item.ID)
	assert.Equal(t, "BRL", item.CurrencyID)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 130.5, item.UnitPrice)
	assert.Equal(t, "booking-12-1717232400000", prefs.got.ExternalReference)
	require.NotNil(t, prefs.got.BackURLs)
	assert.Equal(t, "https://api.example.com/payments/12/return", prefs.got.BackURLs.Success)
}

func TestCreateCheckoutSession_SandboxURL(t *testing.T) {
	prefs := &fakePreferences{resp: &preference.Response{ID: "pref-1", InitPoint: "prod", SandboxInitPoint: "sandbox"}}
	g := &MercadoPagoGateway{preferences: prefs, sandbox: true}

	session, err := g.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "sandbox", session.URL)
}

func TestCreateCheckoutSession_Failures(t *testing.T) {
	_, err := (&MercadoPagoGateway{preferences: &fakePreferences{err: errors.New("timeout")}}).
		CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.EqualError(t, err, "timeout")

	_, err = (&MercadoPagoGateway{preferences: &fakePreferences{resp: &preference.Response{}}}).
		CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.ErrorIs(t, err, ErrEmptySession)

	var nilGateway *MercadoPagoGateway
	_, err = nilGateway.CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
}

func TestGetPayment(t *testing.T) {
	pays := &fakePayments{resp: &payment.Response{ID: 555, Status: "approved", ExternalReference: "booking-12-1"}}
	g := &MercadoPagoGateway{payments: pays}

	st, err := g.GetPayment(context.Background(), "555")
	require.NoError(t, err)
	assert.Equal(t, 555, pays.gotID)
	assert.Equal(t, &domain.PaymentStatus{PaymentID: "555", Status: "approved", Reference: "booking-12-1"}, st)

	_, err = g.GetPayment(context.Background(), "abc")
	assert.Error(t, err)
}

func TestGetPayment_EmptyResponse(t *testing.T) {
	g := &MercadoPagoGateway{payments: &fakePayments{}}

	st, err := g.GetPayment(context.Background(), "555")
	assert.Nil(t, st)
	assert.ErrorIs(t, err, ErrEmptyPayment)
}

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	_, err := NewMercadoPagoGateway("", false, "")
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMockMode_ApprovesOwnSessions(t *testing.T) {
	g, err := NewMercadoPagoGateway("", true, "http://localhost:8080/")
	require.NoError(t, err)

	session, err := g.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)
	assert.Contains(t, session.URL, "http://localhost:8080/mock-checkout/")

	st, err := g.GetPayment(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentApproved, st.Status)
	assert.Equal(t, "booking-12-1717232400000", st.Reference)

	_, err = g.GetPayment(context.Background(), "unknown")
	assert.Error(t, err)
}
