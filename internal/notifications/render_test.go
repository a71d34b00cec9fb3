package notifications

import (
	"strings"
	"testing"

	"clinagenda/pkg/model"
)

func TestRenderConfirmation_WithWindow(t *testing.T) {
	booking := &model.BookingConfirmed{
		BookingID:      "bk-1",
		ProfessionalID: "prof-1",
		PatientName:    "María",
		Date:           "2025-01-06",
	}
	window := &model.TimeWindow{StartTime: "09:00", EndTime: "13:00"}

	text := RenderConfirmation(booking, window)

	if !strings.Contains(text, "María") {
		t.Errorf("patient name missing from text: %q", text)
	}
	if !strings.Contains(text, "2025-01-06") {
		t.Errorf("date missing from text: %q", text)
	}
	if !strings.Contains(text, "de 09:00 a 13:00") {
		t.Errorf("window missing from text: %q", text)
	}
}

func TestRenderConfirmation_WithoutWindow(t *testing.T) {
	booking := &model.BookingConfirmed{
		BookingID:      "bk-1",
		ProfessionalID: "prof-1",
		PatientName:    "María",
		Date:           "2025-01-06",
	}

	text := RenderConfirmation(booking, nil)

	if !strings.Contains(text, HoursPending) {
		t.Errorf("expected placeholder %q in text: %q", HoursPending, text)
	}
}
