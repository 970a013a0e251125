package models

import "time"

// Package bundles services sold together. Services holds the same
// comma-delimited id list used by Booking.Service.
type Package struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null" json:"salon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Services    string  `gorm:"size:255" json:"services"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
