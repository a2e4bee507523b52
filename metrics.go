package incr

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a prometheus.Collector wrapping an Engine's graph-wide
// counters. Grounded on the arena-backed cache in the retrieval pack, which
// wires its own hit/miss/eviction atomics into client_golang the same way:
// a small set of Desc-backed gauges/counters computed on Collect from live
// state, no background goroutine.
type Metrics struct {
	engine *Engine

	stabilizations  *prometheus.Desc
	nodesRecomputed *prometheus.Desc
	nodesChanged    *prometheus.Desc
	nodesLive       *prometheus.Desc
}

// NewMetrics returns a prometheus.Collector for e. Register it with a
// prometheus.Registry the usual way: registry.MustRegister(incr.NewMetrics(e, nil)).
func NewMetrics(e *Engine, labels prometheus.Labels) *Metrics {
	return &Metrics{
		engine: e,
		stabilizations: prometheus.NewDesc(
			"incrgraph_stabilizations_total",
			"Number of Stabilize calls completed.",
			nil, labels,
		),
		nodesRecomputed: prometheus.NewDesc(
			"incrgraph_nodes_recomputed_total",
			"Number of node recomputations performed across all stabilizations.",
			nil, labels,
		),
		nodesChanged: prometheus.NewDesc(
			"incrgraph_nodes_changed_total",
			"Number of node recomputations that reported Updated.",
			nil, labels,
		),
		nodesLive: prometheus.NewDesc(
			"incrgraph_nodes_live",
			"Number of currently live (non-freed) node slots in the graph's arena.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.stabilizations
	ch <- m.nodesRecomputed
	ch <- m.nodesChanged
	ch <- m.nodesLive
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	stats := m.engine.Stats()
	ch <- prometheus.MustNewConstMetric(m.stabilizations, prometheus.CounterValue, float64(stats.StabilizationNum))
	ch <- prometheus.MustNewConstMetric(m.nodesRecomputed, prometheus.CounterValue, float64(stats.NumNodesRecomputed))
	ch <- prometheus.MustNewConstMetric(m.nodesChanged, prometheus.CounterValue, float64(stats.NumNodesChanged))
	ch <- prometheus.MustNewConstMetric(m.nodesLive, prometheus.GaugeValue, float64(stats.NumNodes))
}
