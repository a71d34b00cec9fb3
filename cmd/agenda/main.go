package main

import (
	availabilityhandler "clinagenda/internal/availability/handler"
	availabilityservice "clinagenda/internal/availability/service"
	exceptionshandler "clinagenda/internal/exceptions/handler"
	exceptionsrepo "clinagenda/internal/exceptions/repository"
	exceptionsservice "clinagenda/internal/exceptions/service"
	exceptionsvalidator "clinagenda/internal/exceptions/validator"
	scheduleshandler "clinagenda/internal/schedules/handler"
	schedulesrepo "clinagenda/internal/schedules/repository"
	schedulesservice "clinagenda/internal/schedules/service"
	schedulesvalidator "clinagenda/internal/schedules/validator"
	"clinagenda/pkg/app"
	"clinagenda/pkg/config"
	"clinagenda/pkg/contracts"
	"clinagenda/pkg/kafka"
	kafkaconfig "clinagenda/pkg/kafka/config"
)

const ServiceName = "agenda"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Agenda service")

	handlers, cleanup := initHandlers(cfg)
	defer cleanup()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) (contracts.Handlers, func()) {
	templateRepo := schedulesrepo.NewMongoTemplateRepository(cfg)
	exceptionRepo := exceptionsrepo.NewMongoExceptionRepository(cfg)

	scheduleService := schedulesservice.NewScheduleService(
		templateRepo,
		schedulesvalidator.NewScheduleValidator(cfg.Log),
		cfg,
	)

	// The exception producer is best effort; a broker that is down at
	// startup must not keep the write path from serving.
	var publisher exceptionsservice.EventPublisher
	cleanup := func() {}
	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Warn("Kafka configuration invalid, exception events disabled", "error", err)
	} else {
		producer, err := kafka.NewProducer(kafkaCfg, cfg.ExceptionTopic, cfg.Log)
		if err != nil {
			cfg.Log.Warn("Kafka producer unavailable, exception events disabled", "error", err)
		} else {
			publisher = producer
			cleanup = func() {
				if err := producer.Close(); err != nil {
					cfg.Log.Error("Failed to close Kafka producer", "error", err)
				}
			}
		}
	}

	exceptionService := exceptionsservice.NewExceptionService(
		exceptionRepo,
		exceptionsvalidator.NewExceptionValidator(cfg.Log),
		publisher,
		cfg,
	)

	availabilityService := availabilityservice.NewAvailabilityService(
		templateRepo,
		exceptionRepo,
		cfg,
	)

	cfg.Log.Info("Agenda service initialized", "database", cfg.MongoDatabaseName)
	return contracts.Handlers{
		scheduleshandler.NewScheduleHandler(scheduleService, cfg.Log),
		exceptionshandler.NewExceptionHandler(exceptionService, cfg.Log),
		availabilityhandler.NewAvailabilityHandler(availabilityService, cfg.Log),
	}, cleanup
}
