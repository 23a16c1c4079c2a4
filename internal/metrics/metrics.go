// Package metrics exposes Prometheus counters for draws and the notifications they send.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Draw outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Metrics groups the application counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	draws         *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secretsanta",
			Name:      "draws_total",
			Help:      "Draw requests by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "secretsanta",
			Name:      "notifications_total",
			Help:      "Notification dispatch attempts by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.draws, m.notifications)
	return m
}

// ObserveDraw counts one draw with the given outcome.
func (m *Metrics) ObserveDraw(outcome string) {
	if m == nil {
		return
	}
	m.draws.WithLabelValues(outcome).Inc()
}

// ObserveNotification counts one dispatch attempt with the given status.
func (m *Metrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(status).Inc()
}
