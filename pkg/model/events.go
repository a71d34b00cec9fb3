package model

// Event types carried in the event-type Kafka header.
const (
	EventExceptionCreated = "agenda.exception.created"
	EventBookingConfirmed = "booking.confirmed"
	EventNotification     = "notification.outbound"
)

// BookingConfirmed is the event consumed by the notifier: a booking was
// made against one date and a confirmation message must be composed.
type BookingConfirmed struct {
	BookingID      string `json:"bookingId"`
	ProfessionalID string `json:"professionalId"`
	PatientName    string `json:"patientName"`
	Date           string `json:"date"`
}

// OutboundNotification is what the notifier hands to the delivery
// channel (an external collaborator); this core only composes the text.
type OutboundNotification struct {
	BookingID      string `json:"bookingId"`
	ProfessionalID string `json:"professionalId"`
	Text           string `json:"text"`
}
