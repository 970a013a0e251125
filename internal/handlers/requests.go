package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	bookingUC "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// ======================================================
// REQUESTS
// ======================================================

type BookingRequest struct {
	UserID      uint                 `json:"user_id"`
	SalonID     uint                 `json:"salon_id"`
	Service     dto.ServiceSelection `json:"service"`
	BookingDate string               `json:"booking_date"`
	BookingTime string               `json:"booking_time"`
	Notes       string               `json:"notes"`
	Amount      *float64             `json:"amount"`
	Duration    *int                 `json:"duration"`

	IdempotencyKey string `json:"idempotency_key"`
}

func (r BookingRequest) input() bookingUC.BookingInput {
	return bookingUC.BookingInput{
		UserID:     r.UserID,
		SalonID:    r.SalonID,
		ServiceIDs: []uint(r.Service),
		Date:       r.BookingDate,
		Time:       r.BookingTime,
		Notes:      r.Notes,
		Amount:     r.Amount,
		Duration:   r.Duration,
	}
}

// EditBookingRequest distinguishes an absent field (nil) from an empty one.
type EditBookingRequest struct {
	Service     *dto.ServiceSelection `json:"service"`
	BookingDate *string               `json:"booking_date"`
	BookingTime *string               `json:"booking_time"`
	Duration    *int                  `json:"duration"`
	Notes       *string               `json:"notes"`
	Status      *string               `json:"status"`

	UserID  *uint    `json:"user_id"`
	SalonID *uint    `json:"salon_id"`
	Amount  *float64 `json:"amount"`
}

func (r EditBookingRequest) input() bookingUC.EditBookingInput {
	in := bookingUC.EditBookingInput{
		Date:     r.BookingDate,
		Time:     r.BookingTime,
		Duration: r.Duration,
		Notes:    r.Notes,
		Status:   r.Status,
		UserID:   r.UserID,
		SalonID:  r.SalonID,
		Amount:   r.Amount,
	}
	if r.Service != nil {
		ids := []uint(*r.Service)
		in.ServiceIDs = &ids
	}
	return in
}

type RatingRequest struct {
	Rating *int `json:"rating"`
}

// ======================================================
// HELPERS
// ======================================================

var errInvalidBody = httperr.Validation("invalid_request", "Dados inválidos.")

func parseID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, httperr.Validation("invalid_id", "ID inválido.")
	}
	return uint(n), nil
}

func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, httperr.Validation("invalid_"+name, name+" inválido.")
	}
	return uint(n), nil
}

// ensureSelf stops callers with role user from acting for somebody else.
func ensureSelf(c *gin.Context, userID uint) bool {
	if c.GetString(middleware.ContextUserRole) != middleware.RoleUser {
		return true
	}
	if userID != 0 && userID != c.GetUint(middleware.ContextUserID) {
		httperr.Forbidden(c, "Acesso negado.")
		return false
	}
	return true
}

// scopedSalon returns the salon a salon role token is bound to, or 0.
func scopedSalon(c *gin.Context) uint {
	if c.GetString(middleware.ContextUserRole) != middleware.RoleSalon {
		return 0
	}
	return c.GetUint(middleware.ContextSalonID)
}
