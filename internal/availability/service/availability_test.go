package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"clinagenda/pkg/config"
	mongotx "clinagenda/pkg/db/mongo"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

// Mock repositories for testing
type mockTemplateRepository struct {
	findByProfessionalFunc           func(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error)
	findByProfessionalAndWeekdayFunc func(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error)
}

func (m *mockTemplateRepository) Create(ctx context.Context, tpl *model.ScheduleTemplate) error {
	return nil
}

func (m *mockTemplateRepository) FindByProfessional(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
	if m.findByProfessionalFunc != nil {
		return m.findByProfessionalFunc(ctx, professionalID)
	}
	return []*model.ScheduleTemplate{}, nil
}

func (m *mockTemplateRepository) FindByProfessionalAndWeekday(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error) {
	if m.findByProfessionalAndWeekdayFunc != nil {
		return m.findByProfessionalAndWeekdayFunc(ctx, professionalID, weekday)
	}
	return []*model.ScheduleTemplate{}, nil
}

func (m *mockTemplateRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

type mockExceptionRepository struct {
	findByProfessionalFunc        func(ctx context.Context, professionalID string) ([]*model.Exception, error)
	findByProfessionalAndDateFunc func(ctx context.Context, professionalID, date string) ([]*model.Exception, error)
}

func (m *mockExceptionRepository) Create(ctx context.Context, exc *model.Exception) error {
	return nil
}

func (m *mockExceptionRepository) FindByProfessional(ctx context.Context, professionalID string) ([]*model.Exception, error) {
	if m.findByProfessionalFunc != nil {
		return m.findByProfessionalFunc(ctx, professionalID)
	}
	return []*model.Exception{}, nil
}

func (m *mockExceptionRepository) FindByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]*model.Exception, error) {
	if m.findByProfessionalAndDateFunc != nil {
		return m.findByProfessionalAndDateFunc(ctx, professionalID, date)
	}
	return []*model.Exception{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.FormatJSON,
			Output:  io.Discard,
			Service: "test",
		}),
		MaxTemplateSpanDays: 366,
	}
}

func newTestService(templates []*model.ScheduleTemplate, exceptions []*model.Exception) AvailabilityService {
	return NewAvailabilityService(
		&mockTemplateRepository{
			findByProfessionalFunc: func(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
				return templates, nil
			},
		},
		&mockExceptionRepository{
			findByProfessionalFunc: func(ctx context.Context, professionalID string) ([]*model.Exception, error) {
				return exceptions, nil
			},
		},
		testConfig(),
	)
}

func TestResolve_WeekdayGeneration(t *testing.T) {
	// January 2025 starts on a Wednesday; its Mondays are the 6th,
	// 13th, 20th and 27th.
	svc := newTestService([]*model.ScheduleTemplate{
		{
			ProfessionalID: "prof-1",
			Weekday:        1,
			StartTime:      "09:00",
			EndTime:        "13:00",
			ValidFrom:      "2025-01-01",
			ValidUntil:     "2025-01-31",
		},
	}, nil)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDates := []string{"2025-01-06", "2025-01-13", "2025-01-20", "2025-01-27"}
	if len(days) != len(wantDates) {
		t.Fatalf("expected %d days, got %d", len(wantDates), len(days))
	}
	for i, want := range wantDates {
		if days[i].Date != want {
			t.Errorf("day %d: expected date %s, got %s", i, want, days[i].Date)
		}
		if days[i].StartTime != "09:00" || days[i].EndTime != "13:00" {
			t.Errorf("day %d: expected window 09:00-13:00, got %s-%s", i, days[i].StartTime, days[i].EndTime)
		}
		if days[i].Source != model.SourceTemplate {
			t.Errorf("day %d: expected source %q, got %q", i, model.SourceTemplate, days[i].Source)
		}
	}
}

func TestResolve_CancellationRemovesTemplateDate(t *testing.T) {
	svc := newTestService(
		[]*model.ScheduleTemplate{
			{
				ProfessionalID: "prof-1",
				Weekday:        1,
				StartTime:      "09:00",
				EndTime:        "13:00",
				ValidFrom:      "2025-01-01",
				ValidUntil:     "2025-01-31",
			},
		},
		[]*model.Exception{
			{ProfessionalID: "prof-1", Date: "2025-01-13", Status: model.ExceptionCancelled},
		},
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("expected 3 days after cancellation, got %d", len(days))
	}
	for _, day := range days {
		if day.Date == "2025-01-13" {
			t.Error("cancelled date 2025-01-13 still present in resolution")
		}
	}
}

func TestResolve_ManualOverridesTemplate(t *testing.T) {
	svc := newTestService(
		[]*model.ScheduleTemplate{
			{
				ProfessionalID:  "prof-1",
				Weekday:         1,
				StartTime:       "09:00",
				EndTime:         "13:00",
				ValidFrom:       "2025-01-01",
				ValidUntil:      "2025-01-31",
				AttentionTypeID: "at-consulta",
			},
		},
		[]*model.Exception{
			{
				ProfessionalID: "prof-1",
				Date:           "2025-01-20",
				Status:         model.ExceptionManual,
				StartTime:      "15:00",
				EndTime:        "18:00",
			},
		},
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var overridden *model.AvailableDay
	for _, day := range days {
		if day.Date == "2025-01-20" {
			overridden = day
		}
	}
	if overridden == nil {
		t.Fatal("expected 2025-01-20 in resolution")
	}
	if overridden.StartTime != "15:00" || overridden.EndTime != "18:00" {
		t.Errorf("expected manual window 15:00-18:00, got %s-%s", overridden.StartTime, overridden.EndTime)
	}
	if overridden.Source != model.SourceManual {
		t.Errorf("expected source %q, got %q", model.SourceManual, overridden.Source)
	}
	if overridden.AttentionTypeID != model.ManualAttentionType {
		t.Errorf("expected attention type %q, got %q", model.ManualAttentionType, overridden.AttentionTypeID)
	}
}

func TestResolve_ManualOutsideTemplateAppears(t *testing.T) {
	// A Saturday entry for a professional who only has a Monday rule.
	svc := newTestService(
		[]*model.ScheduleTemplate{
			{
				ProfessionalID: "prof-1",
				Weekday:        1,
				StartTime:      "09:00",
				EndTime:        "13:00",
				ValidFrom:      "2025-01-01",
				ValidUntil:     "2025-01-31",
			},
		},
		[]*model.Exception{
			{
				ProfessionalID: "prof-1",
				Date:           "2025-01-18",
				Status:         model.ExceptionManual,
				StartTime:      "10:00",
				EndTime:        "12:00",
			},
		},
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 5 {
		t.Fatalf("expected 5 days (4 Mondays + 1 manual), got %d", len(days))
	}
	found := false
	for _, day := range days {
		if day.Date == "2025-01-18" && day.Source == model.SourceManual {
			found = true
		}
	}
	if !found {
		t.Error("manual entry 2025-01-18 missing from resolution")
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	svc := newTestService(nil, nil)

	days, err := svc.Resolve(context.Background(), "prof-unknown")
	if err != nil {
		t.Fatalf("expected no error for professional without data, got %v", err)
	}
	if days == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(days) != 0 {
		t.Errorf("expected 0 days, got %d", len(days))
	}
}

func TestResolve_CancelledAndManualSameDate(t *testing.T) {
	// A cancellation filters only template occurrences; a manual entry
	// for the same date still surfaces.
	svc := newTestService(
		[]*model.ScheduleTemplate{
			{
				ProfessionalID: "prof-1",
				Weekday:        1,
				StartTime:      "09:00",
				EndTime:        "13:00",
				ValidFrom:      "2025-01-01",
				ValidUntil:     "2025-01-31",
			},
		},
		[]*model.Exception{
			{ProfessionalID: "prof-1", Date: "2025-01-06", Status: model.ExceptionCancelled},
			{
				ProfessionalID: "prof-1",
				Date:           "2025-01-06",
				Status:         model.ExceptionManual,
				StartTime:      "16:00",
				EndTime:        "19:00",
			},
		},
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var day *model.AvailableDay
	for _, d := range days {
		if d.Date == "2025-01-06" {
			day = d
		}
	}
	if day == nil {
		t.Fatal("expected manual entry for 2025-01-06 despite the cancellation")
	}
	if day.Source != model.SourceManual || day.StartTime != "16:00" {
		t.Errorf("expected manual 16:00 entry, got source=%q start=%s", day.Source, day.StartTime)
	}
}

func TestResolve_SpanTruncation(t *testing.T) {
	// A stored range far beyond the cap only generates occurrences
	// within MaxTemplateSpanDays of validFrom.
	cfg := testConfig()
	cfg.MaxTemplateSpanDays = 7

	svc := NewAvailabilityService(
		&mockTemplateRepository{
			findByProfessionalFunc: func(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
				return []*model.ScheduleTemplate{
					{
						ProfessionalID: "prof-1",
						Weekday:        1,
						StartTime:      "09:00",
						EndTime:        "13:00",
						ValidFrom:      "2025-01-01",
						ValidUntil:     "2030-12-31",
					},
				}, nil
			},
		},
		&mockExceptionRepository{},
		cfg,
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The first seven days of 2025 contain exactly one Monday.
	if len(days) != 1 {
		t.Fatalf("expected 1 day within the 7-day cap, got %d", len(days))
	}
	if days[0].Date != "2025-01-06" {
		t.Errorf("expected 2025-01-06, got %s", days[0].Date)
	}
}

func TestResolve_InvertedRangeGeneratesNothing(t *testing.T) {
	svc := newTestService([]*model.ScheduleTemplate{
		{
			ProfessionalID: "prof-1",
			Weekday:        1,
			StartTime:      "09:00",
			EndTime:        "13:00",
			ValidFrom:      "2025-02-01",
			ValidUntil:     "2025-01-01",
		},
	}, nil)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("inverted range should generate nothing, got %d days", len(days))
	}
}

func TestResolve_DuplicateTemplatesNewestWins(t *testing.T) {
	// The repository returns rows sorted by created_at ascending, so a
	// later row for the same weekday overwrites the earlier one.
	svc := newTestService([]*model.ScheduleTemplate{
		{
			ProfessionalID: "prof-1",
			Weekday:        1,
			StartTime:      "09:00",
			EndTime:        "13:00",
			ValidFrom:      "2025-01-01",
			ValidUntil:     "2025-01-07",
		},
		{
			ProfessionalID: "prof-1",
			Weekday:        1,
			StartTime:      "14:00",
			EndTime:        "18:00",
			ValidFrom:      "2025-01-01",
			ValidUntil:     "2025-01-07",
		},
	}, nil)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	if days[0].StartTime != "14:00" {
		t.Errorf("expected newest template window 14:00, got %s", days[0].StartTime)
	}
}

func TestResolve_SortedAscending(t *testing.T) {
	svc := newTestService(
		[]*model.ScheduleTemplate{
			{
				ProfessionalID: "prof-1",
				Weekday:        5,
				StartTime:      "09:00",
				EndTime:        "13:00",
				ValidFrom:      "2025-01-01",
				ValidUntil:     "2025-01-31",
			},
		},
		[]*model.Exception{
			{
				ProfessionalID: "prof-1",
				Date:           "2025-01-02",
				Status:         model.ExceptionManual,
				StartTime:      "08:00",
				EndTime:        "10:00",
			},
		},
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(days); i++ {
		if days[i-1].Date >= days[i].Date {
			t.Errorf("dates out of order: %s before %s", days[i-1].Date, days[i].Date)
		}
	}
}

func TestResolve_RepositoryError(t *testing.T) {
	svc := NewAvailabilityService(
		&mockTemplateRepository{
			findByProfessionalFunc: func(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
				return nil, errors.New("connection reset")
			},
		},
		&mockExceptionRepository{},
		testConfig(),
	)

	if _, err := svc.Resolve(context.Background(), "prof-1"); err == nil {
		t.Fatal("expected error when the template store fails")
	}
}

func TestDateHours_CancelledShortCircuits(t *testing.T) {
	templatesQueried := false
	svc := NewAvailabilityService(
		&mockTemplateRepository{
			findByProfessionalAndWeekdayFunc: func(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error) {
				templatesQueried = true
				return nil, nil
			},
		},
		&mockExceptionRepository{
			findByProfessionalAndDateFunc: func(ctx context.Context, professionalID, date string) ([]*model.Exception, error) {
				return []*model.Exception{
					{ProfessionalID: "prof-1", Date: date, Status: model.ExceptionCancelled},
				}, nil
			},
		},
		testConfig(),
	)

	window, err := svc.DateHours(context.Background(), "prof-1", "2025-01-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != nil {
		t.Errorf("expected nil window for cancelled date, got %+v", window)
	}
	if templatesQueried {
		t.Error("templates must not be queried when an exception exists")
	}
}

func TestDateHours_NewestExceptionWins(t *testing.T) {
	// Rows arrive sorted by created_at ascending; the last one is the
	// authoritative override.
	svc := NewAvailabilityService(
		&mockTemplateRepository{},
		&mockExceptionRepository{
			findByProfessionalAndDateFunc: func(ctx context.Context, professionalID, date string) ([]*model.Exception, error) {
				return []*model.Exception{
					{Date: date, Status: model.ExceptionManual, StartTime: "08:00", EndTime: "12:00"},
					{Date: date, Status: model.ExceptionManual, StartTime: "14:00", EndTime: "17:00"},
				}, nil
			},
		},
		testConfig(),
	)

	window, err := svc.DateHours(context.Background(), "prof-1", "2025-01-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window == nil {
		t.Fatal("expected a window")
	}
	if window.StartTime != "14:00" || window.EndTime != "17:00" {
		t.Errorf("expected newest window 14:00-17:00, got %s-%s", window.StartTime, window.EndTime)
	}
}

func TestDateHours_TemplateFallback(t *testing.T) {
	svc := NewAvailabilityService(
		&mockTemplateRepository{
			findByProfessionalAndWeekdayFunc: func(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error) {
				if weekday != 1 {
					t.Errorf("expected weekday 1 for 2025-01-06, got %d", weekday)
				}
				return []*model.ScheduleTemplate{
					// Expired rule, then the active one.
					{Weekday: 1, StartTime: "08:00", EndTime: "12:00", ValidFrom: "2024-01-01", ValidUntil: "2024-12-31"},
					{Weekday: 1, StartTime: "09:00", EndTime: "13:00", ValidFrom: "2025-01-01", ValidUntil: "2025-12-31"},
				}, nil
			},
		},
		&mockExceptionRepository{},
		testConfig(),
	)

	window, err := svc.DateHours(context.Background(), "prof-1", "2025-01-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window == nil {
		t.Fatal("expected a window from the active template")
	}
	if window.StartTime != "09:00" || window.EndTime != "13:00" {
		t.Errorf("expected 09:00-13:00, got %s-%s", window.StartTime, window.EndTime)
	}
}

func TestDateHours_NoScheduleIsNotAnError(t *testing.T) {
	svc := NewAvailabilityService(&mockTemplateRepository{}, &mockExceptionRepository{}, testConfig())

	window, err := svc.DateHours(context.Background(), "prof-1", "2025-01-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != nil {
		t.Errorf("expected nil window, got %+v", window)
	}
}

func TestDateHours_InvalidDate(t *testing.T) {
	svc := NewAvailabilityService(&mockTemplateRepository{}, &mockExceptionRepository{}, testConfig())

	tests := []struct {
		name string
		date string
	}{
		{name: "not a date", date: "mañana"},
		{name: "wrong layout", date: "06/01/2025"},
		{name: "impossible day", date: "2025-02-30"},
		{name: "empty", date: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.DateHours(context.Background(), "prof-1", tt.date); err == nil {
				t.Errorf("expected error for date %q", tt.date)
			}
		})
	}
}

func TestDateHours_MatchesResolve(t *testing.T) {
	// The single-date answer must agree with the full resolution for
	// the same data.
	templates := []*model.ScheduleTemplate{
		{
			ProfessionalID: "prof-1",
			Weekday:        1,
			StartTime:      "09:00",
			EndTime:        "13:00",
			ValidFrom:      "2025-01-01",
			ValidUntil:     "2025-01-31",
		},
	}
	exceptions := []*model.Exception{
		{ProfessionalID: "prof-1", Date: "2025-01-13", Status: model.ExceptionCancelled},
		{ProfessionalID: "prof-1", Date: "2025-01-20", Status: model.ExceptionManual, StartTime: "15:00", EndTime: "18:00"},
	}

	svc := NewAvailabilityService(
		&mockTemplateRepository{
			findByProfessionalFunc: func(ctx context.Context, professionalID string) ([]*model.ScheduleTemplate, error) {
				return templates, nil
			},
			findByProfessionalAndWeekdayFunc: func(ctx context.Context, professionalID string, weekday int) ([]*model.ScheduleTemplate, error) {
				var out []*model.ScheduleTemplate
				for _, tpl := range templates {
					if tpl.Weekday == weekday {
						out = append(out, tpl)
					}
				}
				return out, nil
			},
		},
		&mockExceptionRepository{
			findByProfessionalFunc: func(ctx context.Context, professionalID string) ([]*model.Exception, error) {
				return exceptions, nil
			},
			findByProfessionalAndDateFunc: func(ctx context.Context, professionalID, date string) ([]*model.Exception, error) {
				var out []*model.Exception
				for _, exc := range exceptions {
					if exc.Date == date {
						out = append(out, exc)
					}
				}
				return out, nil
			},
		},
		testConfig(),
	)

	days, err := svc.Resolve(context.Background(), "prof-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, day := range days {
		window, err := svc.DateHours(context.Background(), "prof-1", day.Date)
		if err != nil {
			t.Fatalf("DateHours(%s): unexpected error: %v", day.Date, err)
		}
		if window == nil {
			t.Fatalf("DateHours(%s): expected a window, got nil", day.Date)
		}
		if window.StartTime != day.StartTime || window.EndTime != day.EndTime {
			t.Errorf("DateHours(%s): got %s-%s, resolution says %s-%s",
				day.Date, window.StartTime, window.EndTime, day.StartTime, day.EndTime)
		}
	}

	// And the cancelled date answers nil.
	window, err := svc.DateHours(context.Background(), "prof-1", "2025-01-13")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window != nil {
		t.Errorf("expected nil window for cancelled 2025-01-13, got %+v", window)
	}
}
