package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	availabilityservice "clinagenda/internal/availability/service"
	exceptionsrepo "clinagenda/internal/exceptions/repository"
	"clinagenda/internal/notifications/worker"
	schedulesrepo "clinagenda/internal/schedules/repository"
	"clinagenda/pkg/config"
	"clinagenda/pkg/kafka"
	kafkaconfig "clinagenda/pkg/kafka/config"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Notifier service")

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotificationsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create notifications producer", "error", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close notifications producer", "error", err)
		}
	}()

	availabilityService := availabilityservice.NewAvailabilityService(
		schedulesrepo.NewMongoTemplateRepository(cfg),
		exceptionsrepo.NewMongoExceptionRepository(cfg),
		cfg,
	)
	notifierWorker := worker.NewWorker(availabilityService, producer, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingConfirmedTopic,
		cfg.NotifierGroupID,
		cfg.NotifierDLQTopic,
		notifierWorker.HandleBookingConfirmed,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create bookings consumer", "error", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close bookings consumer", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Notifier consuming",
		"topic", cfg.BookingConfirmedTopic,
		"group_id", cfg.NotifierGroupID,
	)
	if err := consumer.Start(ctx); err != nil && err != context.Canceled {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped gracefully")
}
