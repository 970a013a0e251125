package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	bookingUC "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	confirm *bookingUC.ConfirmPayment
	get     *bookingUC.GetBooking
}

func NewPaymentHandler(
	ledger domain.Repository,
	cat catalog.Repository,
	gateway domain.PaymentGateway,
	dispatcher *audit.Dispatcher,
	opts bookingUC.Options,
) *PaymentHandler {
	return &PaymentHandler{
		confirm: bookingUC.NewConfirmPayment(ledger, gateway, dispatcher, opts),
		get:     bookingUC.NewGetBooking(ledger, cat),
	}
}

// notification is the JSON body Mercado Pago posts. data.id arrives as a
// string or a number depending on the API version.
type notification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

const maxNotificationBytes = 64 << 10

// ======================================================
// WEBHOOK
// ======================================================

func (h *PaymentHandler) Notify(c *gin.Context) {
	topic := c.Query("type")
	if topic == "" {
		topic = c.Query("topic")
	}
	paymentID := c.Query("data.id")
	if paymentID == "" {
		paymentID = c.Query("id")
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxNotificationBytes))
	if err != nil {
		logrus.WithError(err).Warn("failed reading payment notification body")
		httperr.Respond(c, errInvalidBody)
		return
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		var n notification
		if err := json.Unmarshal(raw, &n); err != nil {
			httperr.Respond(c, errInvalidBody)
			return
		}
		if topic == "" {
			topic = n.Type
		}
		if paymentID == "" {
			if id := strings.Trim(string(n.Data.ID), `" `); id != "null" {
				paymentID = id
			}
		}
	}

	entry := logrus.WithFields(logrus.Fields{
		"topic":      topic,
		"payment_id": paymentID,
	})

	if topic != "" && topic != "payment" {
		entry.Debug("notification ignored")
		httpresp.OK(c, gin.H{"status": "ignored"})
		return
	}

	b, err := h.confirm.Execute(c.Request.Context(), paymentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if b == nil {
		httpresp.OK(c, gin.H{"status": "ignored"})
		return
	}

	entry.WithField("booking_id", b.ID).Info("payment notification processed")
	httpresp.OK(c, gin.H{
		"status":     "processed",
		"booking_id": b.ID,
		"booking":    b.Status,
	})
}

// ======================================================
// RETURN
// ======================================================

// Return is where the checkout page sends the customer back. When the
// gateway appends payment_id the payment is confirmed right away, so the
// answer does not depend on the webhook having arrived.
func (h *PaymentHandler) Return(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	paymentID := c.Query("payment_id")
	if paymentID == "" {
		paymentID = c.Query("collection_id")
	}
	if paymentID != "" && paymentID != "null" {
		if _, err := h.confirm.Execute(c.Request.Context(), paymentID); err != nil {
			logrus.WithError(err).WithField("booking_id", id).Warn("payment confirmation on return failed")
		}
	}

	h.respondStatus(c, id)
}

// MockCheckout stands in for the hosted checkout page when the gateway runs
// in mock mode: it approves the session and answers with the booking.
func (h *PaymentHandler) MockCheckout(c *gin.Context) {
	b, err := h.confirm.Execute(c.Request.Context(), c.Param("session"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if b == nil {
		httperr.Respond(c, httperr.NotFoundErr("session_not_found", "Sessão não encontrada."))
		return
	}
	h.respondStatus(c, b.ID)
}

func (h *PaymentHandler) respondStatus(c *gin.Context, bookingID uint) {
	detail, err := h.get.Execute(c.Request.Context(), bookingID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"booking_id":     detail.ID,
		"status":         detail.Status,
		"payment_status": c.Query("status"),
		"salon_name":     detail.SalonName,
		"service_name":   detail.ServiceName,
	})
}
