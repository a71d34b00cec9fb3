package model

import "time"

const (
	// ExceptionCancelled removes a template-generated occurrence for one date.
	ExceptionCancelled = "cancelled"
	// ExceptionManual adds or overrides availability for one date with its
	// own time window.
	ExceptionManual = "manual"
)

// Exception is a point-in-time override for one (professional, date)
// pair. StartTime and EndTime are meaningful only for manual entries;
// cancelled entries carry no window.
type Exception struct {
	ID                 string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProfessionalID     string    `json:"professionalId" bson:"professional_id" validate:"required,min=1,max=64"`
	Date               string    `json:"date" bson:"date" validate:"required,date_ymd"`
	Status             string    `json:"status" bson:"status" validate:"required,oneof=cancelled manual"`
	StartTime          string    `json:"startTime,omitempty" bson:"start_time,omitempty" validate:"omitempty,time_hhmm"`
	EndTime            string    `json:"endTime,omitempty" bson:"end_time,omitempty" validate:"omitempty,time_hhmm"`
	Reason             string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=500"`
	ConsultationNumber string    `json:"consultationNumber,omitempty" bson:"consultation_number,omitempty" validate:"omitempty,max=32"`
	CreatedAt          time.Time `json:"createdAt,omitempty" bson:"created_at" validate:"omitempty"`
}
