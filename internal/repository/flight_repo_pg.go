package repository

import (
	"context"
	"errors"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.FlightStats, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, departure_airport, arrival_airport, departure_time, arrival_time, airline, status, total_seats, available_seats, price_cents, created_at, updated_at`

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights
		WHERE ($1 = '' OR departure_airport ILIKE '%' || $1 || '%')
		AND ($2 = '' OR arrival_airport ILIKE '%' || $2 || '%')
		AND ($3 = '' OR departure_time::date = NULLIF($3, '')::date)
		ORDER BY departure_time`
	rows, err := r.db.Query(ctx, query, filter.DepartureAirport, filter.ArrivalAirport, filter.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Create inserts a flight with a full cabin: available_seats starts at
// total_seats and is owned by the seat ledger from then on.
func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	flight.AvailableSeats = flight.TotalSeats
	return r.db.QueryRow(ctx, `INSERT INTO flights (departure_airport, arrival_airport, departure_time, arrival_time, airline, status, total_seats, available_seats, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureTime, flight.ArrivalTime, flight.Airline, flight.Status, flight.TotalSeats, flight.PriceCents).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

// Update changes flight metadata only; available_seats is excluded.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET departure_airport=$2, arrival_airport=$3, departure_time=$4, arrival_time=$5, airline=$6, status=$7, price_cents=$8, updated_at=now() WHERE id=$1`,
		flight.ID, flight.DepartureAirport, flight.ArrivalAirport, flight.DepartureTime, flight.ArrivalTime, flight.Airline, flight.Status, flight.PriceCents)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) Stats(ctx context.Context) (*domain.FlightStats, error) {
	row := r.db.QueryRow(ctx, `SELECT COUNT(*), COUNT(DISTINCT airline), COALESCE(SUM(available_seats), 0) FROM flights`)
	var s domain.FlightStats
	if err := row.Scan(&s.TotalFlights, &s.TotalAirlines, &s.TotalAvailableSeats); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.Airline, &f.Status, &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
