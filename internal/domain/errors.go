package domain

import "errors"

var (
	ErrInvalidSeatCount  = errors.New("seats must be at least 1")
	ErrInsufficientSeats = errors.New("not enough available seats")
	ErrDuplicateBooking  = errors.New("booking already exists for this user and flight")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrForbidden         = errors.New("booking belongs to another user")
)
