package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds every Prometheus metric this module emits. Unlike a
// process-wide singleton, each Collector owns its own registry so tests can
// build one per traversal without fighting duplicate-registration panics.
type Collector struct {
	registry *prometheus.Registry

	TraversalsStarted   prometheus.Counter
	TraversalsCompleted prometheus.Counter
	TraversalsFailed    *prometheus.CounterVec

	NodesSelected  prometheus.Counter
	NodesTraversed prometheus.Counter
	EdgesVisited   prometheus.Counter

	SeedFetchDuration prometheus.Histogram
	AdjacentDuration  prometheus.Histogram
}

// NewCollector builds a Collector with every metric registered under
// namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		TraversalsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traversals_started_total",
			Help:      "Total number of traversals started.",
		}),
		TraversalsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traversals_completed_total",
			Help:      "Total number of traversals that finalized successfully.",
		}),
		TraversalsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traversals_failed_total",
			Help:      "Total number of traversals that returned an error, by error kind.",
		}, []string{"kind"}),
		NodesSelected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_selected_total",
			Help:      "Total number of nodes selected across all traversals.",
		}),
		NodesTraversed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_traversed_total",
			Help:      "Total number of nodes queued for expansion across all traversals.",
		}),
		EdgesVisited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_visited_total",
			Help:      "Total number of distinct outgoing edges visited for expansion.",
		}),
		SeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "seed_fetch_duration_seconds",
			Help:      "Duration of the joint id-get/similarity-search seed fetch.",
			Buckets:   prometheus.DefBuckets,
		}),
		AdjacentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "adjacent_duration_seconds",
			Help:      "Duration of one adapter Adjacent call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		c.TraversalsStarted,
		c.TraversalsCompleted,
		c.TraversalsFailed,
		c.NodesSelected,
		c.NodesTraversed,
		c.EdgesVisited,
		c.SeedFetchDuration,
		c.AdjacentDuration,
	)

	return c
}

// Registry returns the Prometheus registry backing this collector, for
// mounting on a /metrics handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
