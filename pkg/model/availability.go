package model

import (
	"fmt"
	"time"
)

const (
	// SourceTemplate marks a day generated from a recurring weekly rule.
	SourceTemplate = "template"
	// SourceManual marks a day added or overridden by a manual exception.
	SourceManual = "manual"

	// ManualAttentionType is the attention-type placeholder carried by
	// manually-added days, which have no template to inherit one from.
	ManualAttentionType = "manual"
)

// AvailableDay is one bookable calendar date with its effective time
// window, as produced by the availability resolver.
type AvailableDay struct {
	Date               string `json:"date"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	AttentionTypeID    string `json:"attentionTypeId"`
	ConsultationNumber string `json:"consultationNumber,omitempty"`
	Source             string `json:"source"`
}

// TimeWindow is a start/end pair of HH:MM times within one day.
type TimeWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ISOWeekday maps a calendar date onto the 1-7 weekday numbering used
// by schedule templates (Monday=1 .. Sunday=7).
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// ParseDate parses a zero-padded YYYY-MM-DD calendar date in UTC. All
// weekday arithmetic is calendar-date granular; no timezone conversion
// happens. The length check closes the leniency of time.Parse toward
// unpadded components, keeping parsed dates lexically comparable.
func ParseDate(date string) (time.Time, error) {
	if len(date) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return time.ParseInLocation(DateLayout, date, time.UTC)
}
