package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeStoreErr = "store_error"
)

// Collector counts catalog operations by entity, operation and outcome.
type Collector struct {
	operations  *prometheus.CounterVec
	rowsToggled *prometheus.CounterVec
}

// NewCollector registers the catalog metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "licensewatch",
			Subsystem: "admin",
			Name:      "operations_total",
			Help:      "Admin catalog operations by entity, operation and outcome.",
		}, []string{"entity", "operation", "outcome"}),
		rowsToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "licensewatch",
			Subsystem: "admin",
			Name:      "feature_rows_toggled_total",
			Help:      "Feature rows written by page toggles, by column.",
		}, []string{"column"}),
	}
	reg.MustRegister(c.operations, c.rowsToggled)
	return c
}

// Observe is a no-op on a nil Collector.
func (c *Collector) Observe(entity, operation, outcome string) {
	if c == nil {
		return
	}
	c.operations.WithLabelValues(entity, operation, outcome).Inc()
}

func (c *Collector) RowsToggled(column string, rows int64) {
	if c == nil || rows <= 0 {
		return
	}
	c.rowsToggled.WithLabelValues(column).Add(float64(rows))
}
