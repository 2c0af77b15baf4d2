package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/codecafe/appointment-service/internal/appointments"
	"github.com/codecafe/appointment-service/pkg/logging"
)

// meetingTimezone is the IANA zone all calendar events are created in. The
// booking window itself is reported with a fixed descriptive label.
const meetingTimezone = "Asia/Kolkata"

// meetingDuration is the default length of a scheduled call.
const meetingDuration = time.Hour

// Meeting holds the artifacts of a scheduled video call.
type Meeting struct {
	MeetLink string `json:"meetLink"`
	EventID  string `json:"eventId"`
	HTMLLink string `json:"htmlLink"`
}

// Gateway creates calendar events with meeting links for appointments.
// It is a collaborator of the booking flow but is not invoked by it; clients
// call it separately when a meeting link is needed.
type Gateway interface {
	CreateMeeting(ctx context.Context, appt *appointments.Appointment) (*Meeting, error)
}

// GoogleConfig holds OAuth2 credentials for the Google Calendar API.
type GoogleConfig struct {
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	OrganizerEmail string
}

// GoogleGateway creates Google Calendar events with Meet links.
type GoogleGateway struct {
	events    *gcal.EventsService
	organizer string
	logger    *logging.Logger
}

// NewGoogleGateway builds a gateway from a refresh-token OAuth2 config.
func NewGoogleGateway(ctx context.Context, cfg GoogleConfig, logger *logging.Logger) (*GoogleGateway, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("calendar: google credentials not configured")
	}
	if logger == nil {
		logger = logging.Default()
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarEventsScope},
	}
	ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("calendar: create service: %w", err)
	}

	return &GoogleGateway{
		events:    svc.Events,
		organizer: cfg.OrganizerEmail,
		logger:    logger,
	}, nil
}

// CreateMeeting inserts a 1-hour calendar event with a Meet conference for the
// appointment and returns the resulting links.
func (g *GoogleGateway) CreateMeeting(ctx context.Context, appt *appointments.Appointment) (*Meeting, error) {
	event := buildEvent(appt, g.organizer)

	created, err := g.events.Insert("primary", event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		g.logger.Error("calendar event creation failed", "error", err, "appointment_id", appt.ID)
		return nil, fmt.Errorf("calendar: insert event: %w", err)
	}

	g.logger.Info("calendar event created", "event_id", created.Id, "appointment_id", appt.ID)
	return &Meeting{
		MeetLink: created.HangoutLink,
		EventID:  created.Id,
		HTMLLink: created.HtmlLink,
	}, nil
}

var _ Gateway = (*GoogleGateway)(nil)

// buildEvent maps an appointment onto the calendar event payload.
func buildEvent(appt *appointments.Appointment, organizer string) *gcal.Event {
	name := appt.Name
	if name == "" {
		name = "Client"
	}
	description := appt.MeetingDescription
	if description == "" {
		description = "Scheduled appointment"
	}

	start := appt.PreferredDate
	end := start.Add(meetingDuration)

	attendees := []*gcal.EventAttendee{
		{Email: appt.Email, DisplayName: appt.Name},
	}
	if organizer != "" {
		attendees = append(attendees, &gcal.EventAttendee{Email: organizer, Organizer: true})
	}

	return &gcal.Event{
		Summary:     fmt.Sprintf("Meeting with %s", name),
		Description: description,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: meetingTimezone,
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: meetingTimezone,
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Attendees: attendees,
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}
