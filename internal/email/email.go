package email

import (
	"context"

	"github.com/avolkov/flightops/internal/kafka"
	"github.com/sirupsen/logrus"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send is a stub for the mail gateway: the worker logs the notification
// instead of talking to an SMTP relay.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	logrus.WithFields(logrus.Fields{
		"user_id":   event.UserID,
		"flight_id": event.FlightID,
		"seats":     event.Seats,
		"type":      event.Type,
	}).Info("sending booking notification")
	return nil
}
