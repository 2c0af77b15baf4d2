package main

import (
	"context"
	"testing"

	appconfig "github.com/codecafe/appointment-service/internal/config"
	"github.com/codecafe/appointment-service/internal/notify"
	"github.com/codecafe/appointment-service/pkg/logging"
)

func TestBuildEmailSenderStubByDefault(t *testing.T) {
	cfg := &appconfig.Config{EmailProvider: "stub"}
	sender := buildEmailSender(context.Background(), cfg, logging.Default())

	if _, ok := sender.(*notify.StubEmailSender); !ok {
		t.Fatalf("expected stub sender, got %T", sender)
	}
}

func TestBuildEmailSenderSendGridWithoutKeyFallsBack(t *testing.T) {
	cfg := &appconfig.Config{EmailProvider: "sendgrid"}
	sender := buildEmailSender(context.Background(), cfg, logging.Default())

	if _, ok := sender.(*notify.StubEmailSender); !ok {
		t.Fatalf("expected stub fallback without api key, got %T", sender)
	}
}

func TestBuildEmailSenderSendGrid(t *testing.T) {
	cfg := &appconfig.Config{
		EmailProvider:  "sendgrid",
		SendGridAPIKey: "SG.test-key",
		EmailFrom:      "bookings@codecafe.dev",
	}
	sender := buildEmailSender(context.Background(), cfg, logging.Default())

	if _, ok := sender.(*notify.SendGridSender); !ok {
		t.Fatalf("expected sendgrid sender, got %T", sender)
	}
}

func TestBuildCalendarGatewayDisabledWithoutCredentials(t *testing.T) {
	cfg := &appconfig.Config{GoogleClientID: "id-only"}
	if gw := buildCalendarGateway(context.Background(), cfg, logging.Default()); gw != nil {
		t.Fatalf("expected nil gateway without full credentials, got %T", gw)
	}
}

func TestBuildCalendarGatewayWithCredentials(t *testing.T) {
	cfg := &appconfig.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRefreshToken: "refresh-token",
		OrganizerEmail:     "owner@codecafe.dev",
	}
	gw := buildCalendarGateway(context.Background(), cfg, logging.Default())
	if gw == nil {
		t.Fatal("expected gateway when credentials are set")
	}
}
