package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Service{},
		&models.Package{},
		&models.Product{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	// idempotency keys used to be unique across users
	if m := db.Migrator(); m.HasIndex(&models.Booking{}, "idx_bookings_idempotency_key") {
		if err := m.DropIndex(&models.Booking{}, "idx_bookings_idempotency_key"); err != nil {
			logrus.WithError(err).Warn("failed dropping legacy idempotency index")
		}
	}

	// legacy rows written before the status column had a default
	db.Exec(`
        UPDATE bookings
        SET status = 'active'
        WHERE status IS NULL OR status = ''
    `)

	return db
}
