package metrics

import "github.com/prometheus/client_golang/prometheus"

// FanoutMetrics counts notification rows written per fanout scope.
type FanoutMetrics struct {
	rows *prometheus.CounterVec
}

func NewFanoutMetrics(reg prometheus.Registerer) *FanoutMetrics {
	if reg == nil {
		return &FanoutMetrics{}
	}
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_fanout_rows_total",
		Help:      "Notification rows attempted by fanout scope and outcome.",
	}, []string{"scope", "outcome"})
	reg.MustRegister(rows)
	return &FanoutMetrics{rows: rows}
}

// Add records n rows for the scope (single, role, all) and outcome (created, failed).
func (f *FanoutMetrics) Add(scope, outcome string, n int) {
	if f == nil || f.rows == nil || n <= 0 {
		return
	}
	f.rows.WithLabelValues(normalizeLabel(scope), normalizeLabel(outcome)).Add(float64(n))
}
