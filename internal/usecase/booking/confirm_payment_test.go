package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking/mocks"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func seedPending(store *bookingtest.Store) models.Booking {
	return store.Put(models.Booking{
		SalonID:     bookingtest.SalonID,
		UserID:      bookingtest.UserID,
		Service:     "1",
		BookingDate: "2024-06-01",
		BookingTime: "10:00",
		Duration:    60,
		Status:      string(domain.StatusPending),
		Amount:      80,
	})
}

func paymentFor(b models.Booking, status string) *domain.PaymentStatus {
	return &domain.PaymentStatus{
		PaymentID: "555",
		Status:    status,
		Reference: domain.BuildReference(b.ID, fixedNow),
	}
}

func TestConfirmPayment_ApprovedActivatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPaymentGateway(ctrl)
	store := bookingtest.Seeded()
	b := seedPending(store)
	dispatcher, sink := newAudit()
	uc := NewConfirmPayment(store, gw, dispatcher, testOptions())

	gw.EXPECT().GetPayment(gomock.Any(), "555").Return(paymentFor(b, domain.PaymentApproved), nil).Times(2)

	for i := 0; i < 2; i++ {
		got, err := uc.Execute(context.Background(), "555")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, string(domain.StatusActive), got.Status)
	}
	dispatcher.Close()

	assert.Equal(t, []string{"payment_approved"}, sink.actions())
}

func TestConfirmPayment_RejectedCancels(t *testing.T) {
	for _, status := range []string{domain.PaymentRejected, domain.PaymentCanceled, domain.PaymentRefunded} {
		t.Run(status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gw := mocks.NewMockPaymentGateway(ctrl)
			store := bookingtest.Seeded()
			b := seedPending(store)

			gw.EXPECT().GetPayment(gomock.Any(), "555").Return(paymentFor(b, status), nil)

			_, err := NewConfirmPayment(store, gw, nil, testOptions()).Execute(context.Background(), "555")
			require.NoError(t, err)

			stored, _ := store.Booking(b.ID)
			assert.Equal(t, string(domain.StatusCancelled), stored.Status)
			assert.NotNil(t, stored.CancelledAt)
		})
	}
}

func TestConfirmPayment_NonFinalStatusIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPaymentGateway(ctrl)
	store := bookingtest.Seeded()
	b := seedPending(store)

	gw.EXPECT().GetPayment(gomock.Any(), "555").Return(paymentFor(b, "in_process"), nil)

	_, err := NewConfirmPayment(store, gw, nil, testOptions()).Execute(context.Background(), "555")
	require.NoError(t, err)

	stored, _ := store.Booking(b.ID)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestConfirmPayment_UnknownReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPaymentGateway(ctrl)
	store := bookingtest.Seeded()
	uc := NewConfirmPayment(store, gw, nil, testOptions())
	ctx := context.Background()

	gomock.InOrder(
		gw.EXPECT().GetPayment(gomock.Any(), "1").
			Return(&domain.PaymentStatus{PaymentID: "1", Status: "approved", Reference: "order-9"}, nil),
		gw.EXPECT().GetPayment(gomock.Any(), "2").
			Return(&domain.PaymentStatus{PaymentID: "2", Status: "approved", Reference: "booking-404-1"}, nil),
	)

	got, err := uc.Execute(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = uc.Execute(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConfirmPayment_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPaymentGateway(ctrl)
	store := bookingtest.Seeded()
	uc := NewConfirmPayment(store, gw, nil, testOptions())
	ctx := context.Background()

	_, err := uc.Execute(ctx, " ")
	requireKind(t, err, httperr.KindValidation)

	gw.EXPECT().GetPayment(gomock.Any(), "555").Return(nil, errors.New("unauthorized"))
	_, err = uc.Execute(ctx, "555")
	requireKind(t, err, httperr.KindGateway)

	_, err = NewConfirmPayment(store, nil, nil, testOptions()).Execute(ctx, "555")
	requireKind(t, err, httperr.KindGateway)
}
