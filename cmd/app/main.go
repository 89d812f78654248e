package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/flightops/config"
	"github.com/avolkov/flightops/internal/bootstrap"
	"github.com/avolkov/flightops/internal/cache"
	"github.com/avolkov/flightops/internal/kafka"
	"github.com/avolkov/flightops/internal/repository"
	"github.com/avolkov/flightops/internal/service/booking"
	"github.com/avolkov/flightops/internal/service/flights"
	"github.com/avolkov/flightops/internal/tracker"
	"github.com/jackc/pgx/v5/pgxpool"
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

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logrus.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	seatLedger := repository.NewSeatLedger(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		seatLedger,
		bookingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	hub := tracker.NewHub(cfg.Tracker.SubscriberBufferSize)
	feed := tracker.NewOpenSkyClient(
		cfg.Tracker.FeedURL,
		cfg.Tracker.MaxFlights,
		time.Duration(cfg.Tracker.FetchTimeoutSeconds)*time.Second,
	)
	job := tracker.NewJob(
		feed,
		tracker.NewStateCache(),
		hub,
		time.Duration(cfg.Tracker.PollIntervalSeconds)*time.Second,
		time.Duration(cfg.Tracker.FetchTimeoutSeconds)*time.Second,
		tracker.WithKafkaMirror(producer, cfg.Kafka.FlightUpdatesTopic),
	)
	go job.Run(ctx)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, hub); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
