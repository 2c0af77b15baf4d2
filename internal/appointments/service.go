package appointments

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/codecafe/appointment-service/internal/observability/metrics"
	"github.com/codecafe/appointment-service/pkg/logging"
)

var tracer = otel.Tracer("codecafe.internal.appointments")

// Notifier delivers booking confirmations. A failed delivery must be
// catchable; the booking flow logs it and carries on.
type Notifier interface {
	SendConfirmation(ctx context.Context, appt *Appointment) error
}

// Service orchestrates booking validation, persistence and confirmation
// dispatch.
type Service struct {
	repo          Repository
	notifier      Notifier
	metrics       *metrics.BookingMetrics
	logger        *logging.Logger
	timezoneLabel string
}

// NewService constructs a booking service. notifier and bookingMetrics may be
// nil.
func NewService(repo Repository, notifier Notifier, bookingMetrics *metrics.BookingMetrics, logger *logging.Logger, timezoneLabel string) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if timezoneLabel == "" {
		timezoneLabel = "IST (UTC+5:30)"
	}
	return &Service{
		repo:          repo,
		notifier:      notifier,
		metrics:       bookingMetrics,
		logger:        logger,
		timezoneLabel: timezoneLabel,
	}
}

// CreateBooking validates the request, persists the appointment and sends a
// best-effort confirmation email. The returned appointment reflects the
// persisted state regardless of the notification outcome.
//
// No slot-conflict check happens here; slot availability is informational and
// queried separately via AvailableSlots.
func (s *Service) CreateBooking(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.create")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("invalid")
		return nil, err
	}

	scheduledFor, err := req.ScheduledFor()
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("invalid")
		return nil, err
	}
	span.SetAttributes(
		attribute.String("booking.preferred_time", req.PreferredTime),
		attribute.String("booking.preferred_date", scheduledFor.Format("2006-01-02")),
	)

	countryCode := req.CountryCode
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	appt := &Appointment{
		Name:               req.Name,
		Email:              req.Email,
		CountryCode:        countryCode,
		Phone:              req.Phone,
		Website:            req.Website,
		MeetingDescription: req.MeetingDescription,
		PreferredDate:      scheduledFor,
		PreferredTime:      req.PreferredTime,
		Status:             StatusScheduled,
		CreatedAt:          time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, appt)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("failed")
		return nil, err
	}
	s.metrics.ObserveBooking("created")
	s.logger.Info("appointment created", "appointment_id", created.ID, "preferred_time", created.PreferredTime)

	s.sendConfirmation(ctx, created)

	return created, nil
}

// sendConfirmation dispatches the confirmation email with its own error
// boundary. Delivery failure never affects the booking already persisted.
func (s *Service) sendConfirmation(ctx context.Context, appt *Appointment) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendConfirmation(ctx, appt); err != nil {
		s.logger.Error("confirmation email failed", "error", err, "appointment_id", appt.ID, "email", appt.Email)
		s.metrics.ObserveConfirmation("failed")
		return
	}
	s.metrics.ObserveConfirmation("sent")
}

// ListAppointments returns every appointment ordered by preferred date
// ascending.
func (s *Service) ListAppointments(ctx context.Context) ([]*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.list")
	defer span.End()

	appts, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return appts, nil
}

// UpdateStatus overwrites the status of an appointment. Any status value is
// accepted.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.update_status")
	defer span.End()
	span.SetAttributes(attribute.String("booking.status", status))

	appt, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.logger.Info("appointment status updated", "appointment_id", id, "status", status)
	return appt, nil
}

// SlotAvailability is the result of an available-slot query. Timezone is a
// static descriptive label, not a machine-parsed zone.
type SlotAvailability struct {
	AvailableSlots []string `json:"availableSlots"`
	Timezone       string   `json:"timezone"`
}

// AvailableSlots computes the open slots for the given calendar date.
// Cancelled appointments do not block a slot.
func (s *Service) AvailableSlots(ctx context.Context, date string) (*SlotAvailability, error) {
	ctx, span := tracer.Start(ctx, "appointments.available_slots")
	defer span.End()

	if strings.TrimSpace(date) == "" {
		span.RecordError(ErrMissingDate)
		return nil, ErrMissingDate
	}
	day, err := parseDate(date)
	if err != nil {
		span.RecordError(ErrInvalidDateFormat)
		return nil, ErrInvalidDateFormat
	}

	start := time.Now()
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(999*time.Millisecond), day.Location())

	booked, err := s.repo.FindByDateRange(ctx, startOfDay, endOfDay, []string{StatusCancelled})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	times := make([]string, 0, len(booked))
	for _, appt := range booked {
		times = append(times, appt.PreferredTime)
	}

	s.metrics.ObserveSlotQuery(time.Since(start).Seconds())
	return &SlotAvailability{
		AvailableSlots: AvailableSlots(times),
		Timezone:       s.timezoneLabel,
	}, nil
}
