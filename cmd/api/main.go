package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codecafe/appointment-service/internal/api/router"
	"github.com/codecafe/appointment-service/internal/appointments"
	"github.com/codecafe/appointment-service/internal/calendar"
	appconfig "github.com/codecafe/appointment-service/internal/config"
	"github.com/codecafe/appointment-service/internal/notify"
	"github.com/codecafe/appointment-service/internal/observability/metrics"
	"github.com/codecafe/appointment-service/pkg/logging"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting appointment service",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage
	var repo appointments.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		repo = appointments.NewPostgresRepository(pool)
		logger.Info("using postgres appointment store")
	} else {
		repo = appointments.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory appointment store")
	}

	// Notification gateway
	notifier := notify.NewConfirmationNotifier(buildEmailSender(ctx, cfg, logger), logger)

	// Calendar gateway. Meeting links are created by operator tooling, not by
	// the booking flow, so it is only constructed and reported here.
	if gw := buildCalendarGateway(ctx, cfg, logger); gw != nil {
		logger.Info("google calendar gateway ready", "organizer", cfg.OrganizerEmail)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	service := appointments.NewService(repo, notifier, bookingMetrics, logger, cfg.TimezoneLabel)
	handler := appointments.NewHandler(service, logger, cfg.IsDevelopment())

	r := router.New(&router.Config{
		Logger:             logger,
		Appointments:       handler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the confirmation email transport from configuration.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		sender, err := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if err != nil {
			logger.Warn("falling back to stub email sender", "error", err)
			return notify.NewStubEmailSender(logger)
		}
		return sender
	case "ses":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Error("failed to load AWS config, falling back to stub email sender", "error", err)
			return notify.NewStubEmailSender(logger)
		}
		sender, err := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
		if err != nil {
			logger.Error("falling back to stub email sender", "error", err)
			return notify.NewStubEmailSender(logger)
		}
		return sender
	default:
		logger.Info("email delivery disabled, using stub sender", "provider", cfg.EmailProvider)
		return notify.NewStubEmailSender(logger)
	}
}

// buildCalendarGateway constructs the Google Calendar gateway when OAuth
// credentials are configured, or returns nil when they are absent.
func buildCalendarGateway(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) calendar.Gateway {
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRefreshToken == "" {
		logger.Info("google calendar gateway disabled, credentials not set")
		return nil
	}
	gw, err := calendar.NewGoogleGateway(ctx, calendar.GoogleConfig{
		ClientID:       cfg.GoogleClientID,
		ClientSecret:   cfg.GoogleClientSecret,
		RefreshToken:   cfg.GoogleRefreshToken,
		OrganizerEmail: cfg.OrganizerEmail,
	}, logger)
	if err != nil {
		logger.Error("failed to build google calendar gateway", "error", err)
		return nil
	}
	return gw
}
