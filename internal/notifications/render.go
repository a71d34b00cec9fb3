package notifications

import (
	"fmt"

	"clinagenda/pkg/model"
)

// HoursPending is the placeholder used when the professional has no
// resolved window for the booked date. Front desk staff confirm the
// hours manually in that case.
const HoursPending = "horario por confirmar"

// RenderConfirmation builds the Spanish confirmation text sent to the
// patient after a booking is confirmed.
func RenderConfirmation(booking *model.BookingConfirmed, window *model.TimeWindow) string {
	hours := HoursPending
	if window != nil {
		hours = fmt.Sprintf("de %s a %s", window.StartTime, window.EndTime)
	}
	return fmt.Sprintf(
		"Hola %s, tu cita del %s ha sido confirmada. Horario de atención: %s.",
		booking.PatientName, booking.Date, hours,
	)
}
