package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "clinagenda"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Longest validity range a schedule template may cover. Bounds the
	// day-by-day walk in the availability resolver.
	DefaultMaxTemplateSpanDays = 366

	DefaultExceptionTopic        = "agenda.exception.created"
	DefaultExceptionDLQTopic     = "agenda.exception.created.dlq"
	DefaultBookingConfirmedTopic = "bookings.confirmed"
	DefaultNotifierGroupID       = "clinagenda-notifier"
	DefaultNotificationsTopic    = "notifications.outbound"
	DefaultNotifierDLQTopic      = "bookings.confirmed.dlq"
)
