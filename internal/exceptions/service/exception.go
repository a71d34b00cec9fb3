package service

import (
	"context"

	"clinagenda/internal/exceptions/repository"
	"clinagenda/internal/exceptions/validator"
	"clinagenda/pkg/config"
	apperrors "clinagenda/pkg/errors"
	"clinagenda/pkg/kafka"
	"clinagenda/pkg/model"
	"clinagenda/pkg/sanitizer"
)

// EventPublisher is the slice of the Kafka producer the service needs.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type ExceptionService interface {
	Create(ctx context.Context, exc *model.Exception) error
	ListByProfessional(ctx context.Context, professionalID string) ([]*model.Exception, error)
}

type exceptionService struct {
	repo      repository.ExceptionRepository
	validator *validator.ExceptionValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewExceptionService(
	repo repository.ExceptionRepository,
	validator *validator.ExceptionValidator,
	publisher EventPublisher,
	cfg *config.Config,
) ExceptionService {
	return &exceptionService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create validates and inserts one per-date override. Manual entries
// must carry a well-ordered window; cancelled entries carry none.
// The created event is published best effort: a broker failure is
// logged and never rolls back the write.
func (s *exceptionService) Create(ctx context.Context, exc *model.Exception) error {
	s.sanitize(exc)

	if err := s.validator.Validate(exc); err != nil {
		s.cfg.Log.Warn("Exception validation failed",
			"professional_id", exc.ProfessionalID,
			"date", exc.Date,
			"error", err,
		)
		return apperrors.Validation("Exception validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	switch exc.Status {
	case model.ExceptionManual:
		if exc.StartTime == "" || exc.EndTime == "" {
			return apperrors.InvalidInput("manual exceptions require startTime and endTime")
		}
		if exc.StartTime >= exc.EndTime {
			return apperrors.InvalidRange("startTime must be before endTime")
		}
	case model.ExceptionCancelled:
		// A cancelled day has no window; drop whatever the client sent.
		exc.StartTime = ""
		exc.EndTime = ""
	}

	if err := s.repo.Create(ctx, exc); err != nil {
		s.cfg.Log.Error("Failed to create exception",
			"professional_id", exc.ProfessionalID,
			"date", exc.Date,
			"error", err,
		)
		return apperrors.Internal("Failed to create exception", err)
	}

	s.publishCreated(ctx, exc)

	s.cfg.Log.Info("Exception created",
		"id", exc.ID,
		"professional_id", exc.ProfessionalID,
		"date", exc.Date,
		"status", exc.Status,
	)
	return nil
}

func (s *exceptionService) ListByProfessional(ctx context.Context, professionalID string) ([]*model.Exception, error) {
	if professionalID == "" {
		return nil, apperrors.InvalidInput("Professional ID cannot be empty")
	}

	exceptions, err := s.repo.FindByProfessional(ctx, professionalID)
	if err != nil {
		s.cfg.Log.Error("Failed to list exceptions",
			"professional_id", professionalID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve exceptions", err)
	}

	if exceptions == nil {
		exceptions = []*model.Exception{}
	}
	return exceptions, nil
}

func (s *exceptionService) publishCreated(ctx context.Context, exc *model.Exception) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage().
		WithKey(exc.ProfessionalID).
		WithValue(exc).
		WithEventType(model.EventExceptionCreated).
		WithSource("agenda").
		Build()
	if err != nil {
		s.cfg.Log.Error("Failed to build exception event", "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish exception event",
			"professional_id", exc.ProfessionalID,
			"date", exc.Date,
			"error", err,
		)
	}
}

func (s *exceptionService) sanitize(exc *model.Exception) {
	exc.ProfessionalID = sanitizer.TrimAndNormalize(exc.ProfessionalID)
	exc.Reason = sanitizer.NormalizeReason(exc.Reason)
	exc.ConsultationNumber = sanitizer.TrimAndNormalize(exc.ConsultationNumber)
}
