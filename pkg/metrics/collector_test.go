package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsByLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.Observe("feature", "add", OutcomeOK)
	c.Observe("feature", "add", OutcomeOK)
	c.Observe("feature", "add", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("feature", "add", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("feature", "add", OutcomeRejected)))
}

func TestRowsToggled(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RowsToggled("is_tracked", 10)
	c.RowsToggled("is_tracked", 0)

	assert.Equal(t, 10.0, testutil.ToFloat64(c.rowsToggled.WithLabelValues("is_tracked")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Observe("server", "delete", OutcomeOK)
		c.RowsToggled("show_in_lists", 3)
	})
}
