package appointments

import (
	"errors"
	"testing"
	"time"
)

func TestCreateAppointmentRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		wantErr error
	}{
		{"valid", "2025-03-10", "18:30", nil},
		{"valid single digit hour", "2025-03-10", "9:05", nil},
		{"missing date", "", "18:30", ErrMissingDateTime},
		{"missing time", "2025-03-10", "", ErrMissingDateTime},
		{"missing both", "", "", ErrMissingDateTime},
		{"whitespace date counts as missing", "   ", "18:30", ErrMissingDateTime},
		{"hour out of range", "2025-03-10", "25:61", ErrInvalidTimeFormat},
		{"minute out of range", "2025-03-10", "18:75", ErrInvalidTimeFormat},
		{"not a time at all", "2025-03-10", "evening", ErrInvalidTimeFormat},
		{"bad date", "not-a-date", "18:30", ErrInvalidDateFormat},
		{"ambiguous date", "10/03/2025", "18:30", ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreateAppointmentRequest{PreferredDate: tt.date, PreferredTime: tt.time}
			err := req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidationOrderMissingFieldWins(t *testing.T) {
	// Even with a malformed time, a missing date must surface as the
	// missing-field error.
	req := &CreateAppointmentRequest{PreferredDate: "", PreferredTime: "25:61"}
	if err := req.Validate(); !errors.Is(err, ErrMissingDateTime) {
		t.Fatalf("expected ErrMissingDateTime, got %v", err)
	}
}

func TestScheduledForCombinesDateAndTime(t *testing.T) {
	req := &CreateAppointmentRequest{PreferredDate: "2025-03-10", PreferredTime: "19:30"}

	got, err := req.ScheduledFor()
	if err != nil {
		t.Fatalf("ScheduledFor: %v", err)
	}

	want := time.Date(2025, 3, 10, 19, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("seconds/nanoseconds not zeroed: %v", got)
	}
}

func TestScheduledForOverwritesTimeOfDay(t *testing.T) {
	// An RFC3339 date-time keeps its calendar date but the hour/minute come
	// from preferredTime.
	req := &CreateAppointmentRequest{PreferredDate: "2025-03-10T08:15:00Z", PreferredTime: "21:00"}

	got, err := req.ScheduledFor()
	if err != nil {
		t.Fatalf("ScheduledFor: %v", err)
	}

	want := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
