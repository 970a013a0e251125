package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	bookingUC "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// Deps are the collaborators built once at startup. Gateway and Blobs may be
// nil when not configured.
type Deps struct {
	Config    *config.Config
	Ledger    domain.Repository
	Catalog   catalog.Repository
	Gateway   domain.PaymentGateway
	Blobs     catalog.BlobStore
	Audit     *audit.Dispatcher
	AuditLogs handlers.AuditLister
	Options   bookingUC.Options
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(d.Ledger, d.Catalog, d.Gateway, d.Audit, d.Options)
	paymentHandler := handlers.NewPaymentHandler(d.Ledger, d.Catalog, d.Gateway, d.Audit, d.Options)
	salonHandler := handlers.NewSalonHandler(d.Catalog, d.Blobs, d.Audit)
	meHandler := handlers.NewMeHandler(d.Ledger, d.Catalog)

	auth := middleware.AuthMiddleware(cfg)
	staff := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleSalon)
	admin := middleware.RequireRole(middleware.RoleAdmin)

	// ------------------------------
	// PUBLIC
	// ------------------------------
	r.GET("/bookings/:id/:date/slots", bookingHandler.Slots)
	r.POST("/bookings/payment-notifications", paymentHandler.Notify)
	r.GET("/payments/:id/return", paymentHandler.Return)
	r.GET("/salons/:id/catalog", salonHandler.Catalog)

	if cfg.PaymentMock {
		r.GET("/mock-checkout/:session", paymentHandler.MockCheckout)
	}

	// ------------------------------
	// BOOKINGS
	// ------------------------------
	bookings := r.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.GET("", staff, bookingHandler.List)
		bookings.POST("", bookingHandler.Create)
		bookings.POST("/create-checkout-session", bookingHandler.Checkout)

		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id", bookingHandler.Edit)
		bookings.PATCH("/:id/cancel", bookingHandler.Cancel)
		bookings.PATCH("/:id/rating", bookingHandler.Rate)
	}

	// ------------------------------
	// PRIVATE
	// ------------------------------
	secured := r.Group("/")
	secured.Use(auth)
	{
		secured.GET("/me/bookings", meHandler.Bookings)
		secured.PUT("/salons/:id/image", staff, salonHandler.UploadImage)

		if d.AuditLogs != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)
			secured.GET("/audit-logs", admin, auditLogsHandler.List)
		}
	}
}
