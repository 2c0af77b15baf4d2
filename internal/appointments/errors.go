package appointments

import "errors"

var (
	// ErrMissingDateTime is returned when the preferred date or time is absent
	ErrMissingDateTime = errors.New("both preferredDate and preferredTime are required")

	// ErrMissingDate is returned when a slot query has no date parameter
	ErrMissingDate = errors.New("date is required")

	// ErrInvalidTimeFormat is returned when the preferred time is not HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time format, please use HH:MM format (e.g., 18:30)")

	// ErrInvalidDateFormat is returned when the preferred date does not parse
	ErrInvalidDateFormat = errors.New("invalid date format, please use YYYY-MM-DD format")

	// ErrAppointmentNotFound is returned when an appointment id is unknown
	ErrAppointmentNotFound = errors.New("appointment not found")
)
