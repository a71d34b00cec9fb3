package validator

import (
	"io"
	"testing"

	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

func testValidator() *ScheduleValidator {
	return NewScheduleValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	}))
}

func TestValidate_TimeFormats(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name    string
		time    string
		wantErr bool
	}{
		{name: "HH:MM", time: "09:00", wantErr: false},
		{name: "HH:MM:SS", time: "09:00:30", wantErr: false},
		{name: "midnight", time: "00:00", wantErr: false},
		{name: "last minute", time: "23:59", wantErr: false},
		{name: "not zero padded", time: "9:00", wantErr: true},
		{name: "hour 24", time: "24:00", wantErr: true},
		{name: "minute 60", time: "09:60", wantErr: true},
		{name: "second 60", time: "09:00:60", wantErr: true},
		{name: "twelve hour clock", time: "9am", wantErr: true},
		{name: "trailing garbage", time: "09:00x", wantErr: true},
		{name: "empty", time: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := &model.ScheduleTemplateCreate{
				ProfessionalID:  "prof-1",
				Weekdays:        []int{1},
				StartTime:       tt.time,
				EndTime:         "23:59",
				ValidFrom:       "2025-01-01",
				ValidUntil:      "2025-01-31",
				AttentionTypeID: "at-consulta",
			}
			err := v.Validate(create)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for time %q", tt.time)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for time %q: %v", tt.time, err)
			}
		})
	}
}

func TestValidate_DateFormats(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "valid", date: "2025-01-31", wantErr: false},
		{name: "leap day", date: "2024-02-29", wantErr: false},
		{name: "non leap february 29", date: "2025-02-29", wantErr: true},
		{name: "month 13", date: "2025-13-01", wantErr: true},
		{name: "day 32", date: "2025-01-32", wantErr: true},
		{name: "slashes", date: "2025/01/31", wantErr: true},
		{name: "reversed", date: "31-01-2025", wantErr: true},
		{name: "no padding", date: "2025-1-3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := &model.ScheduleTemplateCreate{
				ProfessionalID:  "prof-1",
				Weekdays:        []int{1},
				StartTime:       "09:00",
				EndTime:         "13:00",
				ValidFrom:       tt.date,
				ValidUntil:      "2026-12-31",
				AttentionTypeID: "at-consulta",
			}
			err := v.Validate(create)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for date %q", tt.date)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for date %q: %v", tt.date, err)
			}
		})
	}
}

func TestValidate_Weekdays(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name     string
		weekdays []int
		wantErr  bool
	}{
		{name: "monday", weekdays: []int{1}, wantErr: false},
		{name: "sunday", weekdays: []int{7}, wantErr: false},
		{name: "full week", weekdays: []int{1, 2, 3, 4, 5, 6, 7}, wantErr: false},
		{name: "zero", weekdays: []int{0}, wantErr: true},
		{name: "eight", weekdays: []int{8}, wantErr: true},
		{name: "negative", weekdays: []int{-1}, wantErr: true},
		{name: "one bad among good", weekdays: []int{1, 2, 9}, wantErr: true},
		{name: "empty", weekdays: []int{}, wantErr: true},
		{name: "nil", weekdays: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := &model.ScheduleTemplateCreate{
				ProfessionalID:  "prof-1",
				Weekdays:        tt.weekdays,
				StartTime:       "09:00",
				EndTime:         "13:00",
				ValidFrom:       "2025-01-01",
				ValidUntil:      "2025-01-31",
				AttentionTypeID: "at-consulta",
			}
			err := v.Validate(create)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for weekdays %v", tt.weekdays)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for weekdays %v: %v", tt.weekdays, err)
			}
		})
	}
}

func TestValidationErrors_Message(t *testing.T) {
	v := testValidator()

	create := &model.ScheduleTemplateCreate{
		Weekdays:  []int{1},
		StartTime: "9:00",
	}
	err := v.Validate(create)
	if err == nil {
		t.Fatal("expected error")
	}

	validationErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(validationErrs) == 0 {
		t.Error("expected at least one field error")
	}
}
