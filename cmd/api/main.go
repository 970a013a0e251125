package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-booking/internal/infra/cache"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payments"
	infraRepo "github.com/BruksfildServices01/salon-booking/internal/infra/repository"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/routes"
	bookingUC "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-booking/internal/worker"
)

func main() {

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg)

	// ======================================================
	// INFRA
	// ======================================================
	var kv cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, running without cache")
		} else {
			defer rc.Close()
			kv = rc
		}
	}

	ledger := infraRepo.NewBookingGormRepository(db)
	cat := infraRepo.NewCachedCatalogRepository(infraRepo.NewCatalogGormRepository(db), kv, cfg.CacheTTL)

	var gateway domain.PaymentGateway
	if gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentMock, cfg.PublicBaseURL); err != nil {
		logrus.WithError(err).Warn("payment gateway disabled, checkout will fail")
	} else {
		gateway = gw
	}

	var blobs catalog.BlobStore
	if cfg.S3Enabled() {
		up, err := storage.NewS3Uploader(cfg.S3)
		if err != nil {
			logrus.WithError(err).Warn("image uploads disabled")
		} else {
			blobs = up
		}
	}

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, 256)
	defer dispatcher.Close()

	opts := bookingUC.OptionsFromConfig(cfg)

	// ======================================================
	// WORKERS
	// ======================================================
	if cfg.PendingBookingTTL > 0 {
		expirer := bookingUC.NewExpirePendingBookings(ledger, dispatcher, opts)
		go worker.NewPendingExpiryWorker(expirer, cfg.PendingExpiryInterval, opts.Now).Start(ctx)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Ledger:    ledger,
		Catalog:   cat,
		Gateway:   gateway,
		Blobs:     blobs,
		Audit:     dispatcher,
		AuditLogs: auditLogger,
		Options:   opts,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		logrus.Infof("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}
}
