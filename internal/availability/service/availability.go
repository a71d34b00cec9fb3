package service

import (
	"context"
	"sort"

	exceptionsrepo "clinagenda/internal/exceptions/repository"
	schedulesrepo "clinagenda/internal/schedules/repository"
	"clinagenda/pkg/config"
	apperrors "clinagenda/pkg/errors"
	"clinagenda/pkg/model"
)

// AvailabilityService merges recurring schedule templates with per-date
// exceptions into the authoritative bookable-date view.
//
// Precedence rule: a manual exception always overrides a
// template-generated occurrence for the same date, and a cancellation
// removes the template occurrence outright. Cancellations do not
// suppress manual entries for the same date.
type AvailabilityService interface {
	// Resolve returns every bookable date for the professional with its
	// effective window, sorted by date ascending. No data yields an
	// empty slice, never an error.
	Resolve(ctx context.Context, professionalID string) ([]*model.AvailableDay, error)

	// DateHours answers the single-date question without scanning the
	// whole calendar: the effective window for (professional, date), or
	// nil when the day is cancelled or simply has no schedule.
	DateHours(ctx context.Context, professionalID, date string) (*model.TimeWindow, error)
}

type availabilityService struct {
	templates  schedulesrepo.TemplateRepository
	exceptions exceptionsrepo.ExceptionRepository
	cfg        *config.Config
}

func NewAvailabilityService(
	templates schedulesrepo.TemplateRepository,
	exceptions exceptionsrepo.ExceptionRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		templates:  templates,
		exceptions: exceptions,
		cfg:        cfg,
	}
}

func (s *availabilityService) Resolve(ctx context.Context, professionalID string) ([]*model.AvailableDay, error) {
	if professionalID == "" {
		return nil, apperrors.InvalidInput("Professional ID cannot be empty")
	}

	templates, err := s.templates.FindByProfessional(ctx, professionalID)
	if err != nil {
		s.cfg.Log.Error("Failed to load schedule templates",
			"professional_id", professionalID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load schedule templates", err)
	}

	exceptions, err := s.exceptions.FindByProfessional(ctx, professionalID)
	if err != nil {
		s.cfg.Log.Error("Failed to load exceptions",
			"professional_id", professionalID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load exceptions", err)
	}

	cancelled := cancelledDates(exceptions)

	// Explicit per-date reduction: template-derived days first, manual
	// days second, so a manual override wins for a shared date.
	days := make(map[string]*model.AvailableDay)

	for _, tpl := range templates {
		s.emitTemplateDays(tpl, cancelled, days)
	}

	for _, exc := range exceptions {
		if exc.Status != model.ExceptionManual {
			continue
		}
		days[exc.Date] = &model.AvailableDay{
			Date:               exc.Date,
			StartTime:          exc.StartTime,
			EndTime:            exc.EndTime,
			AttentionTypeID:    model.ManualAttentionType,
			ConsultationNumber: exc.ConsultationNumber,
			Source:             model.SourceManual,
		}
	}

	// Lexical order of ISO dates is chronological order; no date-object
	// comparison needed.
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]*model.AvailableDay, 0, len(dates))
	for _, date := range dates {
		result = append(result, days[date])
	}

	s.cfg.Log.Debug("Availability resolved",
		"professional_id", professionalID,
		"templates", len(templates),
		"exceptions", len(exceptions),
		"days", len(result),
	)
	return result, nil
}

// emitTemplateDays walks the template's validity range day by day and
// records every matching weekday that is not cancelled. The walk is
// truncated at MaxTemplateSpanDays so a bad stored range cannot stall
// a calendar render; an inverted range contributes nothing.
func (s *availabilityService) emitTemplateDays(tpl *model.ScheduleTemplate, cancelled map[string]struct{}, days map[string]*model.AvailableDay) {
	from, err := model.ParseDate(tpl.ValidFrom)
	if err != nil {
		s.cfg.Log.Warn("Skipping template with invalid validFrom",
			"template_id", tpl.ID,
			"valid_from", tpl.ValidFrom,
		)
		return
	}
	until, err := model.ParseDate(tpl.ValidUntil)
	if err != nil {
		s.cfg.Log.Warn("Skipping template with invalid validUntil",
			"template_id", tpl.ID,
			"valid_until", tpl.ValidUntil,
		)
		return
	}

	if limit := from.AddDate(0, 0, s.cfg.MaxTemplateSpanDays-1); until.After(limit) {
		until = limit
	}

	for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
		if model.ISOWeekday(d) != tpl.Weekday {
			continue
		}
		date := d.Format(model.DateLayout)
		if _, isCancelled := cancelled[date]; isCancelled {
			continue
		}
		days[date] = &model.AvailableDay{
			Date:               date,
			StartTime:          tpl.StartTime,
			EndTime:            tpl.EndTime,
			AttentionTypeID:    tpl.AttentionTypeID,
			ConsultationNumber: tpl.ConsultationNumber,
			Source:             model.SourceTemplate,
		}
	}
}

func (s *availabilityService) DateHours(ctx context.Context, professionalID, date string) (*model.TimeWindow, error) {
	if professionalID == "" {
		return nil, apperrors.InvalidInput("Professional ID cannot be empty")
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, apperrors.InvalidInput("date must be a YYYY-MM-DD calendar date")
	}

	exceptions, err := s.exceptions.FindByProfessionalAndDate(ctx, professionalID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load exceptions for date",
			"professional_id", professionalID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load exceptions", err)
	}

	// Exceptions short-circuit templates. The newest row wins, matching
	// the resolver's last-write-wins reduction over created_at order.
	if len(exceptions) > 0 {
		exc := exceptions[len(exceptions)-1]
		if exc.Status == model.ExceptionCancelled {
			return nil, nil
		}
		return &model.TimeWindow{StartTime: exc.StartTime, EndTime: exc.EndTime}, nil
	}

	templates, err := s.templates.FindByProfessionalAndWeekday(ctx, professionalID, model.ISOWeekday(day))
	if err != nil {
		s.cfg.Log.Error("Failed to load schedule templates for weekday",
			"professional_id", professionalID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to load schedule templates", err)
	}

	for _, tpl := range templates {
		if tpl.ValidFrom <= date && date <= tpl.ValidUntil {
			return &model.TimeWindow{StartTime: tpl.StartTime, EndTime: tpl.EndTime}, nil
		}
	}

	// No schedule for this date: a valid outcome the caller renders as
	// "hours unknown", never an error.
	return nil, nil
}

// cancelledDates collapses cancelled exceptions into a date set;
// duplicate cancellations for one date collapse trivially.
func cancelledDates(exceptions []*model.Exception) map[string]struct{} {
	out := make(map[string]struct{})
	for _, exc := range exceptions {
		if exc.Status == model.ExceptionCancelled {
			out[exc.Date] = struct{}{}
		}
	}
	return out
}
