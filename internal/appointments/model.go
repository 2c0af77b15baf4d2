package appointments

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Appointment statuses. The status field is overwritten as given on update,
// with no transition table.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultCountryCode is applied when a booking request omits the country code.
const DefaultCountryCode = "+1"

// Appointment represents a booked consultation slot.
type Appointment struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	CountryCode        string    `json:"countryCode"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website,omitempty"`
	MeetingDescription string    `json:"meetingDescription,omitempty"`
	PreferredDate      time.Time `json:"preferredDate"`
	PreferredTime      string    `json:"preferredTime"`
	MeetLink           string    `json:"meetLink,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CreateAppointmentRequest represents the request body for booking an appointment
type CreateAppointmentRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	CountryCode        string `json:"countryCode"`
	Phone              string `json:"phone"`
	Website            string `json:"website"`
	MeetingDescription string `json:"meetingDescription"`
	PreferredDate      string `json:"preferredDate"`
	PreferredTime      string `json:"preferredTime"`
}

// timePattern accepts 24-hour wall clock times at minute granularity.
// A single-digit hour is allowed (e.g. "9:30").
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// dateLayouts are accepted preferred date encodings, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Validate checks the booking request. Checks run in a fixed order and the
// first failure wins: presence of date and time, then time format, then date
// format. No other fields are validated.
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.PreferredDate) == "" || strings.TrimSpace(r.PreferredTime) == "" {
		return ErrMissingDateTime
	}
	if !timePattern.MatchString(r.PreferredTime) {
		return ErrInvalidTimeFormat
	}
	if _, err := parseDate(r.PreferredDate); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

// ScheduledFor combines the preferred date and HH:MM time into a single
// instant. The date's own time of day is discarded and seconds and
// nanoseconds are zeroed.
func (r *CreateAppointmentRequest) ScheduledFor() (time.Time, error) {
	day, err := parseDate(r.PreferredDate)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if !timePattern.MatchString(r.PreferredTime) {
		return time.Time{}, ErrInvalidTimeFormat
	}
	parts := strings.SplitN(r.PreferredTime, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
