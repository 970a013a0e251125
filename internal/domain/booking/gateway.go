package booking

import "context"

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

type CheckoutRequest struct {
	BookingID       uint
	Reference       string
	Title           string
	Description     string
	Amount          float64
	Currency        string
	ReturnURL       string
	NotificationURL string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentStatus struct {
	PaymentID string
	Status    string
	Reference string
}

const (
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
	PaymentCanceled = "cancelled"
	PaymentRefunded = "refunded"
)

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentStatus, error)
}
