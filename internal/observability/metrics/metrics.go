package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking flow.
type BookingMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	confirmationTotal *prometheus.CounterVec
	slotQueryLatency  prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "codecafe",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total booking attempts",
		}, []string{"outcome"}),
		confirmationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "codecafe",
			Subsystem: "bookings",
			Name:      "confirmation_email_total",
			Help:      "Total confirmation email dispatches",
		}, []string{"outcome"}),
		slotQueryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "codecafe",
			Subsystem: "bookings",
			Name:      "slot_query_seconds",
			Help:      "Latency of available-slot queries",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.confirmationTotal, m.slotQueryLatency)
	return m
}

func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveConfirmation(outcome string) {
	if m == nil {
		return
	}
	m.confirmationTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveSlotQuery(seconds float64) {
	if m == nil {
		return
	}
	m.slotQueryLatency.Observe(seconds)
}
