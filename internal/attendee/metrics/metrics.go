package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registration and scan resolution.
type Metrics struct {
	Registrations *prometheus.CounterVec
	ScanLookups   *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_registrations_total",
			Help: "Total attendee registrations by category",
		}, []string{"category"}),

		ScanLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_scan_lookups_total",
			Help: "Total scan resolutions by result",
		}, []string{"result"}), // result: "found", "not_found"
	}
}

// IncrementRegistration records a completed registration.
func (m *Metrics) IncrementRegistration(category string) {
	if m != nil {
		m.Registrations.WithLabelValues(category).Inc()
	}
}

// IncrementScanLookup records a scan resolution attempt.
func (m *Metrics) IncrementScanLookup(result string) {
	if m != nil {
		m.ScanLookups.WithLabelValues(result).Inc()
	}
}
