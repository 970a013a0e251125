package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	bookingUC "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

type MeHandler struct {
	list *bookingUC.ListBookings
}

func NewMeHandler(ledger domain.Repository, cat catalog.Repository) *MeHandler {
	return &MeHandler{list: bookingUC.NewListBookings(ledger, cat)}
}

// Bookings lists the authenticated user's own bookings.
func (h *MeHandler) Bookings(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	if userID == 0 {
		httperr.Unauthorized(c, "Usuário não autenticado.")
		return
	}

	items, err := h.list.Execute(c.Request.Context(), bookingUC.ListFilter{
		UserID: userID,
		Status: c.Query("status"),
		Date:   c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, items)
}
