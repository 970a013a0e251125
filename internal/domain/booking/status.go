package booking

import (
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusActive, StatusCancelled},
	StatusActive:  {StatusCompleted, StatusCancelled},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", httperr.Validation("invalid_status", "Status inválido.")
}

// Blocking reports whether a booking in this status holds its slot for
// overlap purposes.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusActive
}

// ===============================
// Validations
// ===============================

// CanTransition accepts same-state moves as no-ops. Completed and cancelled
// have no outgoing transitions.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.Conflict("invalid_transition", "Transição de status inválida.")
}

// InitialStatus for bookings created directly (not through checkout).
func InitialStatus() Status {
	return StatusActive
}
