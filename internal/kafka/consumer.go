package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	defaultHeartbeatInterval = 3 * time.Second
	defaultSessionTimeout    = 30 * time.Second
)

// ConsumerConfig describes a consumer-group reader. Zero interval
// values fall back to the defaults above.
type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topic             string
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
}

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg ConsumerConfig) *Consumer {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = defaultHeartbeatInterval
	}
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = defaultSessionTimeout
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             cfg.Topic,
			HeartbeatInterval: cfg.HeartbeatInterval,
			SessionTimeout:    cfg.SessionTimeout,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads messages until the context ends or the handler fails.
// A handler error stops the loop so the group rebalances and the
// message is redelivered.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return fmt.Errorf("handle message %s/%d@%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
		}
	}
}
