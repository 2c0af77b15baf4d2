package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// db is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type db interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const appointmentColumns = `id, name, email, country_code, phone, website, meeting_description,
		preferred_date, preferred_time, meet_link, status, created_at`

// Insert inserts a new row and assigns its id.
func (r *PostgresRepository) Insert(ctx context.Context, appt *Appointment) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, name, email, country_code, phone, website, meeting_description,
			preferred_date, preferred_time, meet_link, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		appt.Name,
		appt.Email,
		appt.CountryCode,
		appt.Phone,
		appt.Website,
		appt.MeetingDescription,
		appt.PreferredDate,
		appt.PreferredTime,
		appt.MeetLink,
		appt.Status,
		appt.CreatedAt,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	stored := *appt
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// FindAll returns all rows ordered by preferred date ascending.
func (r *PostgresRepository) FindAll(ctx context.Context) ([]*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY preferred_date ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("appointments: select all failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// FindByID fetches a single appointment.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return appt, nil
}

// UpdateStatus overwrites the status column and returns the updated row.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	query := `
		UPDATE appointments
		SET status = $2
		WHERE id = $1
		RETURNING ` + appointmentColumns + `
	`
	appt, err := scanAppointment(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: update status failed: %w", err)
	}
	return appt, nil
}

// FindByDateRange returns rows with preferred_date in [start, end], skipping
// the given statuses.
func (r *PostgresRepository) FindByDateRange(ctx context.Context, start, end time.Time, excludeStatuses []string) ([]*Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE preferred_date >= $1
		  AND preferred_date <= $2
		  AND NOT (status = ANY($3))
		ORDER BY preferred_date ASC
	`
	if excludeStatuses == nil {
		excludeStatuses = []string{}
	}
	rows, err := r.db.Query(ctx, query, start, end, excludeStatuses)
	if err != nil {
		return nil, fmt.Errorf("appointments: select by date range failed: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	if err := row.Scan(
		&appt.ID,
		&appt.Name,
		&appt.Email,
		&appt.CountryCode,
		&appt.Phone,
		&appt.Website,
		&appt.MeetingDescription,
		&appt.PreferredDate,
		&appt.PreferredTime,
		&appt.MeetLink,
		&appt.Status,
		&appt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

func scanAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: rows failed: %w", err)
	}
	return out, nil
}

var _ Repository = (*PostgresRepository)(nil)
