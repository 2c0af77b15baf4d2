// Command emailtest sends a test confirmation email to verify the configured
// transport end to end.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"

	"github.com/codecafe/appointment-service/internal/appointments"
	appconfig "github.com/codecafe/appointment-service/internal/config"
	"github.com/codecafe/appointment-service/internal/notify"
	"github.com/codecafe/appointment-service/pkg/logging"
)

func main() {
	to := flag.String("to", "", "recipient address for the test email")
	flag.Parse()
	if *to == "" {
		log.Fatal("usage: emailtest -to you@example.com")
	}

	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		sg, err := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if err != nil {
			log.Fatalf("sendgrid sender: %v", err)
		}
		sender = sg
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("load aws config: %v", err)
		}
		ses, err := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if err != nil {
			log.Fatalf("ses sender: %v", err)
		}
		sender = ses
	default:
		log.Fatalf("EMAIL_PROVIDER=%q does not deliver email; set sendgrid or ses", cfg.EmailProvider)
	}

	now := time.Now()
	appt := &appointments.Appointment{
		Name:               "Test User",
		Email:              *to,
		CountryCode:        appointments.DefaultCountryCode,
		Phone:              "1234567890",
		MeetingDescription: "Test Appointment",
		PreferredDate:      time.Date(now.Year(), now.Month(), now.Day(), 18, 30, 0, 0, time.UTC),
		PreferredTime:      "18:30",
		Status:             appointments.StatusScheduled,
	}

	notifier := notify.NewConfirmationNotifier(sender, logger)
	if err := notifier.SendConfirmation(ctx, appt); err != nil {
		log.Fatalf("failed to send test email: %v", err)
	}
	log.Printf("test email sent to %s", *to)
}
