package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/booking/bookingtest"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		Currency:       "brl",
		PublicBaseURL:  "https://api.example.com/",
		PaymentTimeout: time.Second,
		Now:            func() time.Time { return fixedNow },
	}
}

func ptr[T any](v T) *T {
	return &v
}

func validInput() BookingInput {
	return BookingInput{
		UserID:     bookingtest.UserID,
		SalonID:    bookingtest.SalonID,
		ServiceIDs: []uint{bookingtest.ServiceCut, bookingtest.ServiceBlowDry},
		Date:       "2024-06-01",
		Time:       "10:00",
		Notes:      "primeira vez",
		Amount:     ptr(130.0),
	}
}

func requireKind(t *testing.T, err error, kind httperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, httperr.KindOf(err), "unexpected error: %v", err)
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

// newAudit returns a dispatcher and its sink. Call Close on the dispatcher
// before reading the sink.
func newAudit() (*audit.Dispatcher, *recordingSink) {
	sink := &recordingSink{}
	return audit.NewDispatcher(sink, 16), sink
}
