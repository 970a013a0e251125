package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	bookingUC "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	ledger domain.Repository

	create   *bookingUC.CreateBooking
	get      *bookingUC.GetBooking
	list     *bookingUC.ListBookings
	edit     *bookingUC.EditBooking
	cancel   *bookingUC.CancelBooking
	rate     *bookingUC.RateBooking
	slots    *bookingUC.GetBookedSlots
	checkout *bookingUC.CreateCheckoutSession
}

func NewBookingHandler(
	ledger domain.Repository,
	cat catalog.Repository,
	gateway domain.PaymentGateway,
	dispatcher *audit.Dispatcher,
	opts bookingUC.Options,
) *BookingHandler {
	return &BookingHandler{
		ledger:   ledger,
		create:   bookingUC.NewCreateBooking(ledger, cat, dispatcher, opts),
		get:      bookingUC.NewGetBooking(ledger, cat),
		list:     bookingUC.NewListBookings(ledger, cat),
		edit:     bookingUC.NewEditBooking(ledger, cat, dispatcher, opts),
		cancel:   bookingUC.NewCancelBooking(ledger, dispatcher, opts),
		rate:     bookingUC.NewRateBooking(ledger, dispatcher),
		slots:    bookingUC.NewGetBookedSlots(ledger),
		checkout: bookingUC.NewCreateCheckoutSession(ledger, cat, gateway, dispatcher, opts),
	}
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	var (
		f   bookingUC.ListFilter
		err error
	)
	if f.SalonID, err = queryUint(c, "salon_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	if f.UserID, err = queryUint(c, "user_id"); err != nil {
		httperr.Respond(c, err)
		return
	}
	f.Status = c.Query("status")
	f.Date = c.Query("date")

	if salonID := scopedSalon(c); salonID != 0 {
		f.SalonID = salonID
	}

	items, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.authorize(c, id) {
		return
	}

	detail, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, detail)
}

// Slots answers GET /bookings/:id/:date/slots where :id is the salon.
func (h *BookingHandler) Slots(c *gin.Context) {
	salonID, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	date := c.Param("date")

	slots, err := h.slots.Execute(c.Request.Context(), salonID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// ======================================================
// WRITE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidBody)
		return
	}
	if !ensureSelf(c, req.UserID) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

func (h *BookingHandler) Edit(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.authorize(c, id) {
		return
	}

	var req EditBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidBody)
		return
	}

	b, err := h.edit.Execute(c.Request.Context(), id, req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.authorize(c, id) {
		return
	}

	status, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"status": status})
}

func (h *BookingHandler) Rate(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !h.authorize(c, id) {
		return
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidBody)
		return
	}

	rating, err := h.rate.Execute(c.Request.Context(), id, req.Rating)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"rating": rating})
}

// ======================================================
// CHECKOUT
// ======================================================

func (h *BookingHandler) Checkout(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, errInvalidBody)
		return
	}
	if !ensureSelf(c, req.UserID) {
		return
	}

	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if key == "" {
		key = req.IdempotencyKey
	}
	if len(key) > 100 {
		httperr.Respond(c, httperr.Validation("invalid_idempotency_key", "Idempotency-Key muito longa."))
		return
	}

	session, err := h.checkout.Execute(c.Request.Context(), bookingUC.CheckoutInput{
		BookingInput:   req.input(),
		IdempotencyKey: key,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, session)
}

// authorize lets role user tokens reach only their own bookings and salon
// tokens only their salon's. A missing booking passes so the use case
// answers 404.
func (h *BookingHandler) authorize(c *gin.Context, id uint) bool {
	isUser := c.GetString(middleware.ContextUserRole) == middleware.RoleUser
	salonID := scopedSalon(c)
	if !isUser && salonID == 0 {
		return true
	}

	b, err := h.ledger.GetByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return true
	}
	if err != nil {
		httperr.Respond(c, httperr.Storage(err))
		return false
	}

	if (isUser && b.UserID != c.GetUint(middleware.ContextUserID)) ||
		(salonID != 0 && b.SalonID != salonID) {
		httperr.Forbidden(c, "Acesso negado.")
		return false
	}
	return true
}
