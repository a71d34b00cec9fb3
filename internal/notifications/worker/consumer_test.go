package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"clinagenda/internal/notifications"
	"clinagenda/pkg/kafka"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

type mockAvailabilityService struct {
	dateHoursFunc func(ctx context.Context, professionalID, date string) (*model.TimeWindow, error)
}

func (m *mockAvailabilityService) Resolve(ctx context.Context, professionalID string) ([]*model.AvailableDay, error) {
	return []*model.AvailableDay{}, nil
}

func (m *mockAvailabilityService) DateHours(ctx context.Context, professionalID, date string) (*model.TimeWindow, error) {
	if m.dateHoursFunc != nil {
		return m.dateHoursFunc(ctx, professionalID, date)
	}
	return nil, nil
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func bookingMessage(t *testing.T, booking model.BookingConfirmed) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey(booking.ProfessionalID).
		WithValue(booking).
		WithEventType(model.EventBookingConfirmed).
		WithSource("bookings").
		Build()
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}
	return msg
}

func TestHandleBookingConfirmed_PublishesNotification(t *testing.T) {
	availability := &mockAvailabilityService{
		dateHoursFunc: func(ctx context.Context, professionalID, date string) (*model.TimeWindow, error) {
			return &model.TimeWindow{StartTime: "09:00", EndTime: "13:00"}, nil
		},
	}
	publisher := &mockPublisher{}
	w := NewWorker(availability, publisher, testLogger())

	msg := bookingMessage(t, model.BookingConfirmed{
		BookingID:      "bk-1",
		ProfessionalID: "prof-1",
		PatientName:    "María",
		Date:           "2025-01-06",
	})

	if err := w.HandleBookingConfirmed(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(publisher.published))
	}

	var notification model.OutboundNotification
	if err := json.Unmarshal(publisher.published[0].Value, &notification); err != nil {
		t.Fatalf("failed to decode notification: %v", err)
	}
	if notification.BookingID != "bk-1" {
		t.Errorf("expected booking bk-1, got %s", notification.BookingID)
	}
	if !strings.Contains(notification.Text, "de 09:00 a 13:00") {
		t.Errorf("expected resolved hours in text: %q", notification.Text)
	}
}

func TestHandleBookingConfirmed_NoHoursUsesPlaceholder(t *testing.T) {
	publisher := &mockPublisher{}
	w := NewWorker(&mockAvailabilityService{}, publisher, testLogger())

	msg := bookingMessage(t, model.BookingConfirmed{
		BookingID:      "bk-1",
		ProfessionalID: "prof-1",
		PatientName:    "María",
		Date:           "2025-01-06",
	})

	if err := w.HandleBookingConfirmed(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(publisher.published))
	}

	var notification model.OutboundNotification
	if err := json.Unmarshal(publisher.published[0].Value, &notification); err != nil {
		t.Fatalf("failed to decode notification: %v", err)
	}
	if !strings.Contains(notification.Text, notifications.HoursPending) {
		t.Errorf("expected placeholder in text: %q", notification.Text)
	}
}

func TestHandleBookingConfirmed_MalformedPayload(t *testing.T) {
	w := NewWorker(&mockAvailabilityService{}, &mockPublisher{}, testLogger())

	msg := kafka.Message{Value: []byte("{not json")}
	if err := w.HandleBookingConfirmed(context.Background(), msg); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestHandleBookingConfirmed_MissingFields(t *testing.T) {
	w := NewWorker(&mockAvailabilityService{}, &mockPublisher{}, testLogger())

	msg := bookingMessage(t, model.BookingConfirmed{BookingID: "bk-1"})
	if err := w.HandleBookingConfirmed(context.Background(), msg); err == nil {
		t.Error("expected error for incomplete booking event")
	}
}

func TestHandleBookingConfirmed_PublishFailurePropagates(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("broker unreachable")}
	w := NewWorker(&mockAvailabilityService{}, publisher, testLogger())

	msg := bookingMessage(t, model.BookingConfirmed{
		BookingID:      "bk-1",
		ProfessionalID: "prof-1",
		PatientName:    "María",
		Date:           "2025-01-06",
	})

	if err := w.HandleBookingConfirmed(context.Background(), msg); err == nil {
		t.Error("expected publish failure to propagate for retry")
	}
}

func TestHandleBookingConfirmed_LookupFailurePropagates(t *testing.T) {
	availability := &mockAvailabilityService{
		dateHoursFunc: func(ctx context.Context, professionalID, date string) (*model.TimeWindow, error) {
			return nil, errors.New("store down")
		},
	}
	w := NewWorker(availability, &mockPublisher{}, testLogger())

	msg := bookingMessage(t, model.BookingConfirmed{
		BookingID:      "bk-1",
		ProfessionalID: "prof-1",
		PatientName:    "María",
		Date:           "2025-01-06",
	})

	if err := w.HandleBookingConfirmed(context.Background(), msg); err == nil {
		t.Error("expected lookup failure to propagate for retry")
	}
}
