package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/codecafe/appointment-service/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	service *Service
	logger  *logging.Logger
	devMode bool
}

// NewHandler creates a new appointments handler. devMode includes stack
// traces in unexpected-error responses.
func NewHandler(service *Service, logger *logging.Logger, devMode bool) *Handler {
	if service == nil {
		panic("appointments: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger, devMode: devMode}
}

type errorResponse struct {
	Message      string `json:"message"`
	ReceivedData any    `json:"receivedData,omitempty"`
	Stack        string `json:"stack,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Create handles POST /api/appointments requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode booking request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	appt, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create appointment", "error", err)
		resp := errorResponse{Message: err.Error()}
		switch {
		case errors.Is(err, ErrMissingDateTime):
			// Echo the submitted fields back so callers can see what arrived.
			resp.ReceivedData = req
		case errors.Is(err, ErrInvalidTimeFormat), errors.Is(err, ErrInvalidDateFormat):
		default:
			if h.devMode {
				resp.Stack = string(debug.Stack())
			}
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	writeJSON(w, http.StatusCreated, appt)
}

// List handles GET /api/appointments requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.service.ListAppointments(r.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
		return
	}
	if appts == nil {
		appts = []*Appointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

// UpdateStatus handles PATCH /api/appointments/{id} requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	appt, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Appointment not found"})
			return
		}
		h.logger.Error("failed to update appointment status", "error", err, "appointment_id", id)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, appt)
}

// AvailableSlots handles GET /api/available-slots requests
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	availability, err := h.service.AvailableSlots(r.Context(), date)
	if err != nil {
		if errors.Is(err, ErrMissingDate) || errors.Is(err, ErrInvalidDateFormat) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
			return
		}
		h.logger.Error("failed to fetch available slots", "error", err, "date", date)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error fetching available slots"})
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
