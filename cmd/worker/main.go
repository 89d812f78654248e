package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/flightops/config"
	"github.com/avolkov/flightops/internal/email"
	"github.com/avolkov/flightops/internal/kafka"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:           cfg.Kafka.Brokers,
		GroupID:           cfg.Kafka.GroupID,
		Topic:             cfg.Kafka.NotificationsTopic,
		HeartbeatInterval: time.Duration(cfg.Kafka.HeartbeatIntervalSeconds) * time.Second,
		SessionTimeout:    time.Duration(cfg.Kafka.SessionTimeoutSeconds) * time.Second,
	})
	defer consumer.Close()

	emailSender := email.NewSender()

	logrus.Info("notification worker started")

	if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
		var event kafka.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logrus.WithError(err).Warn("skipping undecodable booking event")
			return nil
		}
		return emailSender.Send(ctx, event)
	}); err != nil && ctx.Err() == nil {
		logrus.Errorf("consumer stopped: %v", err)
	}
}
