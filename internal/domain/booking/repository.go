package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

var (
	ErrNotFound     = errors.New("booking: not found")
	ErrSlotConflict = errors.New("booking: slot overlaps an existing booking")
)

type ListFilter struct {
	SalonID uint
	UserID  uint
	Status  Status
	Date    string
}

// Row is a booking joined with the display names the list view shows.
type Row struct {
	models.Booking
	UserName  string
	SalonName string
}

type Repository interface {
	// -------- Create --------
	Create(ctx context.Context, b *models.Booking) error

	// CreateNoOverlap checks the salon's day and inserts in one serializable
	// transaction. Returns ErrSlotConflict when a blocking booking overlaps.
	CreateNoOverlap(ctx context.Context, b *models.Booking) error

	// -------- Read --------
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	// GetByIdempotencyKey only sees keys the user itself sent.
	GetByIdempotencyKey(ctx context.Context, userID uint, key string) (*models.Booking, error)
	List(ctx context.Context, filter ListFilter) ([]Row, error)

	// ListForDay returns the non-cancelled bookings of a salon on date.
	ListForDay(ctx context.Context, salonID uint, date string) ([]models.Booking, error)

	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)

	// -------- Update --------
	Update(ctx context.Context, b *models.Booking) error

	// UpdateIfStatus writes b only while the stored row is still in
	// expected. It reports false, without error, when the row moved on.
	UpdateIfStatus(ctx context.Context, b *models.Booking, expected Status) (bool, error)
}
