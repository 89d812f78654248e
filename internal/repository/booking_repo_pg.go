package repository

import (
	"context"
	"errors"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Remove(ctx context.Context, id string, requesterID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_id, flight_id, seats, payment_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		booking.ID, booking.UserID, booking.FlightID, booking.Seats, booking.PaymentStatus).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, flight_id, seats, payment_status, created_at, updated_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Seats, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Remove deletes the booking only when it belongs to the requester. The
// ownership check rides in the DELETE predicate so a concurrent cancel
// cannot slip between lookup and delete.
func (r *PGBookingRepository) Remove(ctx context.Context, id string, requesterID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 AND user_id=$2 RETURNING id, user_id, flight_id, seats, payment_status, created_at, updated_at`, id, requesterID)
	var b domain.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Seats, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id=$1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrForbidden
	}
	return nil, domain.ErrBookingNotFound
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, flight_id, seats, payment_status, created_at, updated_at FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT id, user_id, flight_id, seats, payment_status, created_at, updated_at FROM bookings WHERE ($1 = 0 OR flight_id = $1) AND ($2 = 0 OR user_id = $2) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, filter.FlightID, filter.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Seats, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
