package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConsumer_DefaultIntervals(t *testing.T) {
	consumer := NewConsumer(ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "workers",
		Topic:   "booking_notifications",
	})
	defer consumer.Close()

	cfg := consumer.reader.Config()
	assert.Equal(t, defaultHeartbeatInterval, cfg.HeartbeatInterval)
	assert.Equal(t, defaultSessionTimeout, cfg.SessionTimeout)
}

func TestNewConsumer_ConfiguredIntervals(t *testing.T) {
	consumer := NewConsumer(ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "workers",
		Topic:             "booking_notifications",
		HeartbeatInterval: 5 * time.Second,
		SessionTimeout:    45 * time.Second,
	})
	defer consumer.Close()

	cfg := consumer.reader.Config()
	assert.Equal(t, 5*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, 45*time.Second, cfg.SessionTimeout)
}
