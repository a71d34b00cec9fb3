package model

import "time"

// ScheduleTemplate is one recurring weekly availability rule: a single
// (professional, weekday) pair with a time window and an inclusive
// validity date range. An admin-defined recurring schedule materializes
// one row per selected weekday.
type ScheduleTemplate struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProfessionalID     string    `json:"professionalId" bson:"professional_id" validate:"required,min=1,max=64"`
	Weekday            int       `json:"weekday" bson:"weekday" validate:"required,iso_weekday"`
	StartTime          string    `json:"startTime" bson:"start_time" validate:"required,time_hhmm"`
	EndTime            string    `json:"endTime" bson:"end_time" validate:"required,time_hhmm"`
	ValidFrom          string    `json:"validFrom" bson:"valid_from" validate:"required,date_ymd"`
	ValidUntil         string    `json:"validUntil" bson:"valid_until" validate:"required,date_ymd"`
	AttentionTypeID    string    `json:"attentionTypeId" bson:"attention_type_id" validate:"required,min=1,max=64"`
	ConsultationNumber string    `json:"consultationNumber,omitempty" bson:"consultation_number,omitempty" validate:"omitempty,max=32"`
	CreatedAt          time.Time `json:"createdAt,omitempty" bson:"created_at" validate:"omitempty"`
}

// ScheduleTemplateCreate is the POST /horarios payload: one time window
// and validity range fanned out over the selected weekdays.
type ScheduleTemplateCreate struct {
	ProfessionalID     string `json:"professionalId" validate:"required,min=1,max=64"`
	Weekdays           []int  `json:"weekdays" validate:"required,min=1,max=7,dive,iso_weekday"`
	StartTime          string `json:"startTime" validate:"required,time_hhmm"`
	EndTime            string `json:"endTime" validate:"required,time_hhmm"`
	ValidFrom          string `json:"validFrom" validate:"required,date_ymd"`
	ValidUntil         string `json:"validUntil" validate:"required,date_ymd"`
	AttentionTypeID    string `json:"attentionTypeId" validate:"required,min=1,max=64"`
	ConsultationNumber string `json:"consultationNumber,omitempty" validate:"omitempty,max=32"`
}
