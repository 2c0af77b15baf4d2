package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/codecafe/appointment-service/internal/appointments"
	"github.com/codecafe/appointment-service/pkg/logging"
)

// ConfirmationNotifier renders and sends the booking confirmation email.
// It implements appointments.Notifier.
type ConfirmationNotifier struct {
	sender EmailSender
	logger *logging.Logger
}

// NewConfirmationNotifier creates a notifier backed by the given sender.
func NewConfirmationNotifier(sender EmailSender, logger *logging.Logger) *ConfirmationNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &ConfirmationNotifier{sender: sender, logger: logger}
}

// SendConfirmation builds and sends the confirmation email for a booked
// appointment.
func (n *ConfirmationNotifier) SendConfirmation(ctx context.Context, appt *appointments.Appointment) error {
	if n.sender == nil {
		return fmt.Errorf("notify: email sender not configured")
	}
	if appt.Email == "" {
		return fmt.Errorf("notify: recipient email is required")
	}

	msg, err := ConfirmationMessage(appt)
	if err != nil {
		return err
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send confirmation: %w", err)
	}
	n.logger.Info("confirmation email dispatched", "to", appt.Email, "appointment_id", appt.ID)
	return nil
}

var _ appointments.Notifier = (*ConfirmationNotifier)(nil)

var confirmationHTML = template.Must(template.New("confirmation").Parse(`
<div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 600px; margin: 0 auto; line-height: 1.6; color: #333;">
  <div style="background-color: #eeeeee; padding: 25px 0; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="margin: 15px 0 0; font-size: 28px; font-weight: 600;">Appointment Confirmed!</h1>
  </div>
  <div style="padding: 30px; background: #ffffff; border: 1px solid #e0e0e0; border-top: none; border-radius: 0 0 8px 8px;">
    <p style="margin: 0 0 20px; font-size: 16px;">Hello <strong>{{.Name}}</strong>,</p>
    <div style="background: #f8f9ff; border-left: 4px solid #4a6baf; padding: 15px; margin: 20px 0;">
      <p style="margin: 0 0 10px; font-size: 17px;">Your appointment has been successfully scheduled for:</p>
      <p style="margin: 10px 0; font-size: 18px;"><strong>{{.Date}}</strong> at <strong>{{.Time}}</strong></p>
    </div>
    <p style="margin: 25px 0 20px; font-size: 15px;">
      We'll send you the meeting link shortly before your scheduled time.
      Please check your email a few minutes before the appointment.
    </p>
    <p style="margin: 25px 0 0; font-size: 15px; color: #666;">
      Best regards,<br><strong>The Code Cafe Team</strong>
    </p>
  </div>
</div>
`))

// ConfirmationMessage builds the confirmation email for a booked appointment.
func ConfirmationMessage(appt *appointments.Appointment) (EmailMessage, error) {
	name := appt.Name
	if name == "" {
		name = "there"
	}
	formattedDate := appt.PreferredDate.Format("Monday, January 2, 2006")
	timeString := appt.PreferredTime
	if timeString == "" {
		timeString = "your scheduled time"
	}

	var htmlBuf bytes.Buffer
	err := confirmationHTML.Execute(&htmlBuf, map[string]string{
		"Name": name,
		"Date": formattedDate,
		"Time": timeString,
	})
	if err != nil {
		return EmailMessage{}, fmt.Errorf("notify: render confirmation: %w", err)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment has been successfully scheduled for %s at %s.\n\n"+
			"We'll send you the meeting link shortly before your scheduled time.\n\n"+
			"Best regards,\nThe Code Cafe Team\n",
		name, formattedDate, timeString,
	)

	return EmailMessage{
		To:      appt.Email,
		ToName:  appt.Name,
		Subject: fmt.Sprintf("Your Appointment is Confirmed - %s at %s", formattedDate, timeString),
		Body:    body,
		HTML:    htmlBuf.String(),
	}, nil
}
