package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	schedvalidator "clinagenda/internal/schedules/validator"
	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

// ExceptionValidator checks the POST /excepciones payload. The custom
// tags are shared with the schedule validator; the manual-entry window
// rule (start before end) lives in the service, at the store boundary.
type ExceptionValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewExceptionValidator(log *logger.Logger) *ExceptionValidator {
	v := validator.New()

	if err := v.RegisterValidation("time_hhmm", schedvalidator.ValidateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'time_hhmm' validator", "error", err)
	}
	if err := v.RegisterValidation("date_ymd", schedvalidator.ValidateCalendarDate); err != nil {
		log.Fatal("Failed to register 'date_ymd' validator", "error", err)
	}
	if err := v.RegisterValidation("iso_weekday", schedvalidator.ValidateISOWeekday); err != nil {
		log.Fatal("Failed to register 'iso_weekday' validator", "error", err)
	}

	return &ExceptionValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ExceptionValidator) Validate(exc *model.Exception) error {
	if err := v.validate.Struct(exc); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateExceptionErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateExceptionErrors(errs validator.ValidationErrors) schedvalidator.ValidationErrors {
	var out schedvalidator.ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = err.Field() + " is required"
		case "oneof":
			message = "status must be either 'cancelled' or 'manual'"
		case "time_hhmm":
			message = err.Field() + " must be a zero-padded HH:MM or HH:MM:SS time"
		case "date_ymd":
			message = err.Field() + " must be a YYYY-MM-DD calendar date"
		case "max":
			message = err.Field() + " is too long"
		}

		out = append(out, schedvalidator.ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return out
}
