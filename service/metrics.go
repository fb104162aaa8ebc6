package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts operation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	operations     *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

// NewMetrics registers the service collectors on reg. Collectors that are
// already registered (e.g. by a previous instance in tests) are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bankist",
			Name:      "operations_total",
			Help:      "Session and ledger operations by outcome",
		}, []string{"operation", "outcome"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bankist",
			Name:      "active_sessions",
			Help:      "Number of active sessions (0 or 1)",
		}),
	}

	if err := reg.Register(m.operations); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				m.operations = existing
			}
		}
	}
	if err := reg.Register(m.activeSessions); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(prometheus.Gauge); ok {
				m.activeSessions = existing
			}
		}
	}
	return m
}

func (m *Metrics) observe(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.With(prometheus.Labels{"operation": operation, "outcome": outcome}).Inc()
}

func (m *Metrics) setActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.activeSessions.Set(1)
	} else {
		m.activeSessions.Set(0)
	}
}

// outcomeOf maps an operation error onto a metric label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLoanDiscarded):
		return "discarded"
	case errors.Is(err, ErrSessionExpired):
		return "expired"
	default:
		return "rejected"
	}
}
