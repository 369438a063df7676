package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the check-in module.
type Metrics struct {
	// Decisions by action, day and result ("accepted" or rejection reason)
	Decisions *prometheus.CounterVec

	// Full check-in latency including the store transaction
	CheckinLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_checkin_decisions_total",
			Help: "Total check-in decisions by action, day and result",
		}, []string{"action", "day", "result"}),

		CheckinLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatepass_checkin_duration_seconds",
			Help:    "Duration of full check-in handling including the store write",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementDecision records a check-in outcome.
func (m *Metrics) IncrementDecision(action string, day int, result string) {
	if m != nil {
		m.Decisions.WithLabelValues(action, dayLabel(day), result).Inc()
	}
}

// ObserveCheckinLatency records the total handling duration.
func (m *Metrics) ObserveCheckinLatency(d time.Duration) {
	if m != nil {
		m.CheckinLatency.Observe(d.Seconds())
	}
}

func dayLabel(day int) string {
	if day == 2 {
		return "2"
	}
	return "1"
}
