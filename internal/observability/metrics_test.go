package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectorRegistersEveryMetric(t *testing.T) {
	c := NewCollector("metrics_test")
	require.NotNil(t, c.Registry())

	// A CounterVec with no children yields no family on Gather; create one
	// child so every registered metric shows up.
	c.TraversalsFailed.WithLabelValues("ADAPTER_ERROR")

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 8)
}

func TestCollectorCountersIncrement(t *testing.T) {
	c := NewCollector("metrics_test_counters")

	c.TraversalsStarted.Inc()
	c.TraversalsStarted.Inc()
	c.TraversalsCompleted.Inc()
	c.TraversalsFailed.WithLabelValues("ADAPTER_ERROR").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.TraversalsStarted))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.TraversalsCompleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.TraversalsFailed.WithLabelValues("ADAPTER_ERROR")))
}

func TestTwoCollectorsDoNotShareRegistries(t *testing.T) {
	a := NewCollector("metrics_test_isolation")
	b := NewCollector("metrics_test_isolation")

	a.TraversalsStarted.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(a.TraversalsStarted))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.TraversalsStarted))
}
