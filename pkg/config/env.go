package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxTemplateSpanDays = "MAX_TEMPLATE_SPAN_DAYS"

	EnvExceptionTopic        = "EXCEPTION_TOPIC"
	EnvExceptionDLQTopic     = "EXCEPTION_DLQ_TOPIC"
	EnvBookingConfirmedTopic = "BOOKING_CONFIRMED_TOPIC"
	EnvNotifierGroupID       = "NOTIFIER_GROUP_ID"
	EnvNotificationsTopic    = "NOTIFICATIONS_TOPIC"
	EnvNotifierDLQTopic      = "NOTIFIER_DLQ_TOPIC"
)
