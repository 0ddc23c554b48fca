package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the rules engine.
type Metrics struct {
	// Evaluation outcomes by lender and outcome tier
	Outcome *prometheus.CounterVec

	// Gate failures by gate name
	GateFailure *prometheus.CounterVec

	// Full evaluation latency across the catalog
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prequal_bre_outcomes_total",
			Help: "Evaluation outcomes by lender and tier",
		}, []string{"lender", "outcome"}),

		GateFailure: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "prequal_bre_gate_failures_total",
			Help: "Gate failures by gate name",
		}, []string{"gate"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prequal_bre_evaluate_duration_seconds",
			Help:    "Duration of one full catalog evaluation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementOutcome records one lender verdict.
func (m *Metrics) IncrementOutcome(lender, outcome string) {
	if m != nil {
		m.Outcome.WithLabelValues(lender, outcome).Inc()
	}
}

// IncrementGateFailure records one failed gate.
func (m *Metrics) IncrementGateFailure(gate string) {
	if m != nil {
		m.GateFailure.WithLabelValues(gate).Inc()
	}
}

// ObserveEvaluateLatency records the duration of a full catalog evaluation.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
