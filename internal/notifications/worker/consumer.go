package worker

import (
	"context"
	"fmt"

	availabilitysvc "clinagenda/internal/availability/service"
	"clinagenda/internal/notifications"
	"clinagenda/pkg/kafka"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

// Publisher is the slice of the Kafka producer the worker needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Worker turns confirmed-booking events into outbound patient
// notifications. For each booking it resolves the professional's hours
// for the booked date and renders the confirmation text; a failed
// publish bubbles up so the consumer retries and eventually dead
// letters the event.
type Worker struct {
	availability availabilitysvc.AvailabilityService
	publisher    Publisher
	log          *logger.Logger
}

func NewWorker(availability availabilitysvc.AvailabilityService, publisher Publisher, log *logger.Logger) *Worker {
	return &Worker{
		availability: availability,
		publisher:    publisher,
		log:          log,
	}
}

// HandleBookingConfirmed is the MessageHandler for the confirmed
// bookings topic.
func (w *Worker) HandleBookingConfirmed(ctx context.Context, msg kafka.Message) error {
	var booking model.BookingConfirmed
	if err := msg.DecodeValue(&booking); err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}
	if booking.BookingID == "" || booking.ProfessionalID == "" || booking.Date == "" {
		return fmt.Errorf("booking event %s is missing required fields", msg.GetEventID())
	}

	window, err := w.availability.DateHours(ctx, booking.ProfessionalID, booking.Date)
	if err != nil {
		return fmt.Errorf("failed to resolve hours for booking %s: %w", booking.BookingID, err)
	}
	if window == nil {
		// Not an error: the notification goes out with the pending
		// hours placeholder.
		w.log.Warn("No resolved hours for booked date",
			"booking_id", booking.BookingID,
			"professional_id", booking.ProfessionalID,
			"date", booking.Date,
		)
	}

	notification := model.OutboundNotification{
		BookingID:      booking.BookingID,
		ProfessionalID: booking.ProfessionalID,
		Text:           notifications.RenderConfirmation(&booking, window),
	}

	out, err := kafka.NewMessage().
		WithKey(booking.ProfessionalID).
		WithValue(notification).
		WithEventType(model.EventNotification).
		WithSource("notifier").
		Build()
	if err != nil {
		return fmt.Errorf("failed to build notification message: %w", err)
	}

	if err := w.publisher.Publish(ctx, out); err != nil {
		return fmt.Errorf("failed to publish notification for booking %s: %w", booking.BookingID, err)
	}

	w.log.Info("Booking confirmation notification published",
		"booking_id", booking.BookingID,
		"professional_id", booking.ProfessionalID,
		"date", booking.Date,
		"hours_resolved", window != nil,
	)
	return nil
}
