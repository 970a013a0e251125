package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint `gorm:"not null;index;uniqueIndex:idx_bookings_user_idempotency,priority:1" json:"user_id"`
	SalonID uint `gorm:"not null;index:idx_bookings_salon_date,priority:1" json:"salon_id"`

	// comma-delimited service ids, in selection order
	Service string `gorm:"size:255;not null" json:"service"`

	BookingDate string `gorm:"size:10;not null;index:idx_bookings_salon_date,priority:2" json:"booking_date"`
	BookingTime string `gorm:"size:8;not null" json:"booking_time"`
	Duration    int    `gorm:"not null" json:"duration"`

	Status string  `gorm:"size:20;default:'active';index" json:"status"`
	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Rating *int    `json:"rating"`
	Notes  string  `gorm:"type:text" json:"notes"`

	IdempotencyKey   *string `gorm:"size:100;uniqueIndex:idx_bookings_user_idempotency,priority:2" json:"-"`
	PaymentSessionID string  `gorm:"size:100" json:"payment_session_id,omitempty"`
	PaymentReference string  `gorm:"size:120" json:"payment_reference,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
