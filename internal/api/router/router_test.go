package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codecafe/appointment-service/internal/appointments"
	"github.com/codecafe/appointment-service/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()
	svc := appointments.NewService(appointments.NewInMemoryRepository(), nil, nil, logger, "IST (UTC+5:30)")
	handler := appointments.NewHandler(svc, logger, true)

	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:             logger,
		Appointments:       handler,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"*"},
	})
}

func TestRouterRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"list appointments", http.MethodGet, "/api/appointments", "", http.StatusOK},
		{"create appointment", http.MethodPost, "/api/appointments",
			`{"name":"Jordan","email":"jordan@example.com","phone":"5550100","preferredDate":"2025-03-10","preferredTime":"18:00"}`,
			http.StatusCreated},
		{"available slots", http.MethodGet, "/api/available-slots?date=2025-03-10", "", http.StatusOK},
		{"available slots missing date", http.MethodGet, "/api/available-slots", "", http.StatusBadRequest},
		{"patch unknown appointment", http.MethodPatch, "/api/appointments/unknown",
			`{"status":"cancelled"}`, http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
	req.Header.Set("Origin", "https://codecafe.dev")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS headers on preflight")
	}
}
