package booking

import (
	"context"

	"github.com/avolkov/flightops/internal/domain"
	"github.com/avolkov/flightops/internal/kafka"
	"github.com/avolkov/flightops/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Create(ctx context.Context, userID, flightID int64, seats int) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID string, requesterID int64) error
	Get(ctx context.Context, bookingID string, requesterID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService owns the invariant linking booking rows to the seat
// ledger: seats are decremented exactly when a booking row exists for
// them. Every partial failure path compensates before returning.
type BookingService struct {
	ledger             repository.SeatLedger
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	ledger repository.SeatLedger,
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		ledger:       ledger,
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, userID, flightID int64, seats int) (*domain.Booking, error) {
	if seats < 1 {
		return nil, domain.ErrInvalidSeatCount
	}

	if err := s.ledger.Reserve(ctx, flightID, seats); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		FlightID:      flightID,
		Seats:         seats,
		PaymentStatus: domain.PaymentStatusSuccess,
	}

	if err := s.bookings.Insert(ctx, booking); err != nil {
		// The reservation already happened; give the seats back before
		// surfacing the insert failure. The rollback runs on a detached
		// context: a canceled request must not strand the reservation.
		rollbackCtx := context.WithoutCancel(ctx)
		if relErr := s.ledger.Release(rollbackCtx, flightID, seats); relErr != nil {
			logrus.WithError(relErr).WithField("flight_id", flightID).
				Error("failed to roll back seat reservation")
		}
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		logrus.WithError(err).WithField("booking_id", booking.ID).
			Warn("failed to publish booking_created event")
	}
	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, bookingID string, requesterID int64) error {
	removed, err := s.bookings.Remove(ctx, bookingID, requesterID)
	if err != nil {
		return err
	}

	if err := s.ledger.Release(ctx, removed.FlightID, removed.Seats); err != nil {
		// The booking row is gone but its seats were not credited back.
		// Restore the row so the two stay consistent, then surface the
		// error. Detached context: the restore must run even when the
		// release failed because the request was canceled.
		restoreCtx := context.WithoutCancel(ctx)
		if insErr := s.bookings.Insert(restoreCtx, removed); insErr != nil {
			logrus.WithError(insErr).WithField("booking_id", removed.ID).
				Error("failed to restore booking after release failure")
		}
		return err
	}

	if err := s.publish(ctx, "booking_cancelled", removed); err != nil {
		logrus.WithError(err).WithField("booking_id", removed.ID).
			Warn("failed to publish booking_cancelled event")
	}
	return nil
}

// Get returns a booking to its owner; other callers are rejected the
// same way Cancel rejects them.
func (s *BookingService) Get(ctx context.Context, bookingID string, requesterID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx, filter)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		FlightID:      booking.FlightID,
		Seats:         booking.Seats,
		PaymentStatus: string(booking.PaymentStatus),
		CreatedAt:     booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
