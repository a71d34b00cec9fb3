package service

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/mongo"

	"clinagenda/internal/schedules/repository"
	"clinagenda/internal/schedules/validator"
	"clinagenda/pkg/config"
	apperrors "clinagenda/pkg/errors"
	"clinagenda/pkg/model"
	"clinagenda/pkg/sanitizer"
)

type ScheduleService interface {
	Create(ctx context.Context, create *model.ScheduleTemplateCreate) ([]*model.ScheduleTemplate, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error)
}

type scheduleService struct {
	repo      repository.TemplateRepository
	validator *validator.ScheduleValidator
	cfg       *config.Config
}

func NewScheduleService(
	repo repository.TemplateRepository,
	validator *validator.ScheduleValidator,
	cfg *config.Config,
) ScheduleService {
	return &scheduleService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create materializes one template row per selected weekday, all
// sharing the same window and validity range. The inserts run in one
// transaction: a professional either gets the full weekday set or none.
func (s *scheduleService) Create(ctx context.Context, create *model.ScheduleTemplateCreate) ([]*model.ScheduleTemplate, error) {
	s.sanitize(create)

	if err := s.validator.Validate(create); err != nil {
		s.cfg.Log.Warn("Schedule template validation failed",
			"professional_id", create.ProfessionalID,
			"error", err,
		)
		return nil, apperrors.Validation("Schedule template validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if create.StartTime >= create.EndTime {
		return nil, apperrors.InvalidRange("startTime must be before endTime")
	}

	if err := s.checkValiditySpan(create.ValidFrom, create.ValidUntil); err != nil {
		return nil, err
	}

	weekdays := dedupeWeekdays(create.Weekdays)

	templates := make([]*model.ScheduleTemplate, 0, len(weekdays))
	for _, weekday := range weekdays {
		templates = append(templates, &model.ScheduleTemplate{
			ProfessionalID:     create.ProfessionalID,
			Weekday:            weekday,
			StartTime:          create.StartTime,
			EndTime:            create.EndTime,
			ValidFrom:          create.ValidFrom,
			ValidUntil:         create.ValidUntil,
			AttentionTypeID:    create.AttentionTypeID,
			ConsultationNumber: create.ConsultationNumber,
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, tpl := range templates {
			if err := s.repo.Create(sessCtx, tpl); err != nil {
				return apperrors.Internal("Failed to create schedule template", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create schedule templates",
			"professional_id", create.ProfessionalID,
			"weekdays", weekdays,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Schedule templates created",
		"professional_id", create.ProfessionalID,
		"weekdays", weekdays,
		"valid_from", create.ValidFrom,
		"valid_until", create.ValidUntil,
	)
	return templates, nil
}

func (s *scheduleService) ListByProfessional(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
	if professionalID == "" {
		return nil, apperrors.InvalidInput("Professional ID cannot be empty")
	}

	templates, err := s.repo.FindByProfessional(ctx, professionalID)
	if err != nil {
		s.cfg.Log.Error("Failed to list schedule templates",
			"professional_id", professionalID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve schedule templates", err)
	}

	// Absence of templates is a valid outcome, not an error.
	if templates == nil {
		templates = []*model.ScheduleTemplate{}
	}
	return templates, nil
}

// checkValiditySpan rejects ranges whose day-by-day walk would exceed
// the configured cap. An inverted range is allowed: it simply generates
// no occurrences.
func (s *scheduleService) checkValiditySpan(validFrom, validUntil string) error {
	from, err := model.ParseDate(validFrom)
	if err != nil {
		return apperrors.InvalidInput("validFrom must be a YYYY-MM-DD calendar date")
	}
	until, err := model.ParseDate(validUntil)
	if err != nil {
		return apperrors.InvalidInput("validUntil must be a YYYY-MM-DD calendar date")
	}

	if until.Before(from) {
		return nil
	}

	spanDays := int(until.Sub(from).Hours()/24) + 1
	if spanDays > s.cfg.MaxTemplateSpanDays {
		return apperrors.InvalidRange("validity range exceeds the maximum allowed span").WithDetails(map[string]any{
			"span_days": spanDays,
			"max_days":  s.cfg.MaxTemplateSpanDays,
		})
	}
	return nil
}

func (s *scheduleService) sanitize(create *model.ScheduleTemplateCreate) {
	create.ProfessionalID = sanitizer.TrimAndNormalize(create.ProfessionalID)
	create.AttentionTypeID = sanitizer.TrimAndNormalize(create.AttentionTypeID)
	create.ConsultationNumber = sanitizer.TrimAndNormalize(create.ConsultationNumber)
}

func dedupeWeekdays(weekdays []int) []int {
	seen := make(map[int]struct{}, len(weekdays))
	out := make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		out = append(out, wd)
	}
	sort.Ints(out)
	return out
}
