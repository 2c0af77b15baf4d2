package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

var appointmentTestColumns = []string{
	"id", "name", "email", "country_code", "phone", "website", "meeting_description",
	"preferred_date", "preferred_time", "meet_link", "status", "created_at",
}

func TestPostgresInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()
	scheduledFor := time.Date(2025, 4, 1, 18, 30, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "Jordan", "jordan@example.com", "+1", "5550100", "", "",
			scheduledFor, "18:30", "", StatusScheduled, now).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	appt, err := repo.Insert(context.Background(), &Appointment{
		Name:          "Jordan",
		Email:         "jordan@example.com",
		CountryCode:   "+1",
		Phone:         "5550100",
		PreferredDate: scheduledFor,
		PreferredTime: "18:30",
		Status:        StatusScheduled,
		CreatedAt:     now,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected assigned id")
	}
	if !appt.CreatedAt.Equal(now) {
		t.Errorf("created_at mismatch: %v", appt.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateStatusNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("UPDATE appointments").
		WithArgs("missing", StatusCompleted).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.UpdateStatus(context.Background(), "missing", StatusCompleted); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestPostgresFindByDateRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	start := day
	end := time.Date(2025, 4, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	booked := day.Add(19 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(start, end, []string{StatusCancelled}).
		WillReturnRows(pgxmock.NewRows(appointmentTestColumns).
			AddRow("id-1", "Jordan", "jordan@example.com", "+1", "5550100", "", "",
				booked, "19:00", "", StatusScheduled, day))

	got, err := repo.FindByDateRange(context.Background(), start, end, []string{StatusCancelled})
	if err != nil {
		t.Fatalf("FindByDateRange: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].PreferredTime != "19:00" {
		t.Errorf("unexpected row %+v", got[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresFindAllPropagatesError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WillReturnError(errors.New("connection refused"))

	if _, err := repo.FindAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
