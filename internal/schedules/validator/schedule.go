package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"clinagenda/pkg/logger"
	"clinagenda/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// reTimeOfDay requires zero-padded HH:MM with optional seconds, so
// that lexical comparison of two time strings orders them correctly.
var reTimeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// ValidateTimeOfDay backs the `time_hhmm` tag.
func ValidateTimeOfDay(fl validator.FieldLevel) bool {
	return reTimeOfDay.MatchString(fl.Field().String())
}

// ValidateCalendarDate backs the `date_ymd` tag: a real YYYY-MM-DD date.
func ValidateCalendarDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(model.DateLayout) {
		return false
	}
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}

// ValidateISOWeekday backs the `iso_weekday` tag: integer 1-7, Monday=1.
func ValidateISOWeekday(fl validator.FieldLevel) bool {
	wd := fl.Field().Int()
	return wd >= 1 && wd <= 7
}

type ScheduleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewScheduleValidator(log *logger.Logger) *ScheduleValidator {
	v := validator.New()

	if err := v.RegisterValidation("time_hhmm", ValidateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'time_hhmm' validator", "error", err)
	}
	if err := v.RegisterValidation("date_ymd", ValidateCalendarDate); err != nil {
		log.Fatal("Failed to register 'date_ymd' validator", "error", err)
	}
	if err := v.RegisterValidation("iso_weekday", ValidateISOWeekday); err != nil {
		log.Fatal("Failed to register 'iso_weekday' validator", "error", err)
	}

	return &ScheduleValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ScheduleValidator) Validate(create *model.ScheduleTemplateCreate) error {
	if err := v.validate.Struct(create); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s elements or characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must have at most %s elements or characters", err.Field(), err.Param())
		case "time_hhmm":
			message = fmt.Sprintf("%s must be a zero-padded HH:MM or HH:MM:SS time", err.Field())
		case "date_ymd":
			message = fmt.Sprintf("%s must be a YYYY-MM-DD calendar date", err.Field())
		case "iso_weekday":
			message = fmt.Sprintf("%s must be a weekday between 1 (Monday) and 7 (Sunday)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
