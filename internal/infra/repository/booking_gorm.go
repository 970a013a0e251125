package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) CreateNoOverlap(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var day []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"salon_id = ? AND booking_date = ? AND status IN ?",
				b.SalonID,
				b.BookingDate,
				[]string{string(domain.StatusPending), string(domain.StatusActive)},
			).
			Find(&day).Error; err != nil {
			return err
		}

		hit, err := domain.FindOverlap(*b, day)
		if err != nil {
			return err
		}
		if hit != nil {
			return domain.ErrSlotConflict
		}

		return tx.Create(b).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil && !errors.Is(err, domain.ErrSlotConflict) {
		return fmt.Errorf("create booking without overlap: %w", err)
	}
	return err
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "get booking")
	}
	return &b, nil
}

func (r *BookingGormRepository) GetByIdempotencyKey(
	ctx context.Context,
	userID uint,
	key string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&b).Error; err != nil {
		return nil, notFound(err, "get booking by idempotency key")
	}
	return &b, nil
}

func (r *BookingGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]domain.Row, error) {

	q := r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.*, users.name AS user_name, salons.name AS salon_name").
		Joins("LEFT JOIN users ON users.id = bookings.user_id").
		Joins("LEFT JOIN salons ON salons.id = bookings.salon_id")

	if f.SalonID != 0 {
		q = q.Where("bookings.salon_id = ?", f.SalonID)
	}
	if f.UserID != 0 {
		q = q.Where("bookings.user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("bookings.status = ?", string(f.Status))
	}
	if f.Date != "" {
		q = q.Where("bookings.booking_date = ?", f.Date)
	}

	var rows []domain.Row
	if err := q.Order("bookings.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return rows, nil
}

func (r *BookingGormRepository) ListForDay(
	ctx context.Context,
	salonID uint,
	date string,
) ([]models.Booking, error) {

	var day []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "salon_id", "booking_date", "booking_time", "duration", "status").
		Where(
			"salon_id = ? AND booking_date = ? AND status <> ?",
			salonID, date, string(domain.StatusCancelled),
		).
		Order("id ASC").
		Find(&day).Error; err != nil {
		return nil, fmt.Errorf("list bookings for day: %w", err)
	}
	return day, nil
}

func (r *BookingGormRepository) ListPendingBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]models.Booking, error) {

	var pending []models.Booking
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(domain.StatusPending), cutoff).
		Order("id ASC").
		Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("list pending bookings: %w", err)
	}
	return pending, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	return nil
}

func (r *BookingGormRepository) UpdateIfStatus(
	ctx context.Context,
	b *models.Booking,
	expected domain.Status,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(b).
		Where("status = ?", string(expected)).
		Select("*").
		Omit("id", "created_at").
		Updates(b)
	if res.Error != nil {
		return false, fmt.Errorf("update booking %d if %s: %w", b.ID, expected, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
