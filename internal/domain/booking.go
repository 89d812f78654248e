package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

type Booking struct {
	ID            string        `json:"id"`
	UserID        int64         `json:"user_id"`
	FlightID      int64         `json:"flight_id"`
	Seats         int           `json:"seats"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookingFilter narrows ListAll results for operator views.
type BookingFilter struct {
	FlightID int64
	UserID   int64
}
