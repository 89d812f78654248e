package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "SCHEDULED"
	FlightStatusOnTime    FlightStatus = "ON_TIME"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

type Flight struct {
	ID               int64        `json:"id"`
	DepartureAirport string       `json:"departure_airport"`
	ArrivalAirport   string       `json:"arrival_airport"`
	DepartureTime    time.Time    `json:"departure_time"`
	ArrivalTime      time.Time    `json:"arrival_time"`
	Airline          string       `json:"airline"`
	Status           FlightStatus `json:"status"`
	TotalSeats       int          `json:"total_seats"`
	AvailableSeats   int          `json:"available_seats"`
	PriceCents       int64        `json:"price_cents"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// FlightFilter narrows List results. Zero values mean no constraint.
type FlightFilter struct {
	DepartureAirport string
	ArrivalAirport   string
	Date             string // departure day, YYYY-MM-DD
}

// FlightStats are the dashboard aggregates shown to operators.
type FlightStats struct {
	TotalFlights        int64 `json:"total_flights"`
	TotalAirlines       int64 `json:"total_airlines"`
	TotalAvailableSeats int64 `json:"total_available_seats"`
}
