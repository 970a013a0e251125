package dto

import "github.com/BruksfildServices01/salon-booking/internal/models"

// BookingDetail is a booking with its salon and resolved service names.
type BookingDetail struct {
	models.Booking
	SalonName   string `json:"salon_name"`
	ServiceName string `json:"service_name"`
}

type BookingListItem struct {
	models.Booking
	UserName    string `json:"user_name"`
	SalonName   string `json:"salon_name"`
	ServiceName string `json:"service_name"`
}

type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	BookingID   uint   `json:"booking_id"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}
