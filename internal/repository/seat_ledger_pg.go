package repository

import (
	"context"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeatLedger owns the available_seats counter. Reserve and Release are the
// only writers of that column; flight CRUD never touches it.
type SeatLedger interface {
	Reserve(ctx context.Context, flightID int64, seats int) error
	Release(ctx context.Context, flightID int64, seats int) error
}

type PGSeatLedger struct {
	db *pgxpool.Pool
}

func NewSeatLedger(db *pgxpool.Pool) SeatLedger {
	return &PGSeatLedger{db: db}
}

// Reserve decrements available_seats if at least `seats` remain. The
// conditional UPDATE takes a row lock, so concurrent reserves on the same
// flight serialize while different flights proceed independently.
func (l *PGSeatLedger) Reserve(ctx context.Context, flightID int64, seats int) error {
	cmd, err := l.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`, flightID, seats)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := l.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, flightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrFlightNotFound
		}
		return domain.ErrInsufficientSeats
	}
	return nil
}

// Release credits seats back. It does not re-check the capacity ceiling:
// every release corresponds to a prior successful reserve.
func (l *PGSeatLedger) Release(ctx context.Context, flightID int64, seats int) error {
	cmd, err := l.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2, updated_at = now() WHERE id=$1`, flightID, seats)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

var _ SeatLedger = (*PGSeatLedger)(nil)
