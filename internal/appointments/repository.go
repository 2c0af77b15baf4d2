package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage
type Repository interface {
	Insert(ctx context.Context, appt *Appointment) (*Appointment, error)
	FindAll(ctx context.Context) ([]*Appointment, error)
	FindByID(ctx context.Context, id string) (*Appointment, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error)
	FindByDateRange(ctx context.Context, start, end time.Time, excludeStatuses []string) ([]*Appointment, error)
}

// InMemoryRepository is an in-memory implementation of Repository, used when
// no database is configured and by tests.
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appointments: make(map[string]*Appointment),
	}
}

// Insert stores a new appointment and assigns its id.
func (r *InMemoryRepository) Insert(ctx context.Context, appt *Appointment) (*Appointment, error) {
	stored := *appt
	stored.ID = uuid.New().String()

	r.mu.Lock()
	r.appointments[stored.ID] = &stored
	r.mu.Unlock()

	out := stored
	return &out, nil
}

// FindAll returns every appointment ordered by preferred date ascending.
func (r *InMemoryRepository) FindAll(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	out := make([]*Appointment, 0, len(r.appointments))
	for _, appt := range r.appointments {
		cp := *appt
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PreferredDate.Before(out[j].PreferredDate)
	})
	return out, nil
}

// FindByID retrieves an appointment by id.
func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

// UpdateStatus overwrites the status of the appointment with the given id.
// The new status is stored as given, with no transition checks.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status string) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	appt.Status = status
	cp := *appt
	return &cp, nil
}

// FindByDateRange returns appointments whose preferred date falls in
// [start, end], skipping any whose status is listed in excludeStatuses.
func (r *InMemoryRepository) FindByDateRange(ctx context.Context, start, end time.Time, excludeStatuses []string) ([]*Appointment, error) {
	excluded := make(map[string]struct{}, len(excludeStatuses))
	for _, s := range excludeStatuses {
		excluded[s] = struct{}{}
	}

	r.mu.RLock()
	var out []*Appointment
	for _, appt := range r.appointments {
		if appt.PreferredDate.Before(start) || appt.PreferredDate.After(end) {
			continue
		}
		if _, skip := excluded[appt.Status]; skip {
			continue
		}
		cp := *appt
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PreferredDate.Before(out[j].PreferredDate)
	})
	return out, nil
}

var _ Repository = (*InMemoryRepository)(nil)
