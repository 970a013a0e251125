package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// Options carries the settings the booking use cases share.
type Options struct {
	EnforceNoOverlap bool

	Currency       string
	PublicBaseURL  string
	PaymentTimeout time.Duration

	PendingTTL time.Duration

	Now func() time.Time
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		EnforceNoOverlap: cfg.EnforceNoOverlap,
		Currency:         cfg.PaymentCurrency,
		PublicBaseURL:    cfg.PublicBaseURL,
		PaymentTimeout:   cfg.PaymentTimeout,
		PendingTTL:       cfg.PendingBookingTTL,
		Now:              timezone.Clock(cfg.Timezone),
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) currency() string {
	if o.Currency == "" {
		return "BRL"
	}
	return strings.ToUpper(o.Currency)
}

func (o Options) paymentTimeout() time.Duration {
	if o.PaymentTimeout <= 0 {
		return 15 * time.Second
	}
	return o.PaymentTimeout
}

func (o Options) baseURL() string {
	return strings.TrimRight(o.PublicBaseURL, "/")
}
