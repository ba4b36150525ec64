// Package metrics exposes Prometheus instruments for map construction,
// dynamic node churn and path queries.
//
// A nil *Metrics is valid and records nothing, so library code can call the
// recording methods unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hpa"

// Query results.
const (
	ResultFound       = "found"
	ResultUnreachable = "unreachable"
	ResultTrivial     = "trivial"
	ResultError       = "error"
)

// Search scopes.
const (
	ScopeCluster  = "cluster"
	ScopeAbstract = "abstract"
	ScopeConcrete = "concrete"
)

// Dynamic node operations.
const (
	OpInsert = "insert"
	OpRemove = "remove"
)

// Metrics groups every instrument of one registry.
type Metrics struct {
	buildDuration prometheus.Histogram
	abstractNodes *prometheus.GaugeVec
	abstractEdges *prometheus.GaugeVec
	queries       *prometheus.CounterVec
	queryDuration prometheus.Histogram
	expansions    *prometheus.CounterVec
	refinements   prometheus.Counter
	dynamicNodes  *prometheus.CounterVec
}

// New registers the instruments with reg. A nil reg uses a fresh private
// registry, which keeps tests independent of the global default.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent building a hierarchical map.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		abstractNodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "abstract_nodes",
			Help:      "Abstract nodes per level after the last build.",
		}, []string{"level"}),
		abstractEdges: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "abstract_edges",
			Help:      "Directed abstract edges per level after the last build.",
		}, []string{"level"}),
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Path queries by result.",
		}, []string{"result"}),
		queryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Time spent answering one path query.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		expansions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_expansions_total",
			Help:      "Nodes expanded by A* searches, by search scope.",
		}, []string{"scope"}),
		refinements: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refinements_total",
			Help:      "Abstract hops replaced by their lower-level path.",
		}),
		dynamicNodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dynamic_nodes_total",
			Help:      "Dynamic abstract node inserts and removes.",
		}, []string{"op"}),
	}
}

// ObserveBuild records a finished build.
func (m *Metrics) ObserveBuild(d time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(d.Seconds())
}

// SetLevelSize publishes the node and edge count of one level.
func (m *Metrics) SetLevelSize(level string, nodes, edges int) {
	if m == nil {
		return
	}
	m.abstractNodes.WithLabelValues(level).Set(float64(nodes))
	m.abstractEdges.WithLabelValues(level).Set(float64(edges))
}

// ObserveQuery records one finished path query.
func (m *Metrics) ObserveQuery(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(result).Inc()
	m.queryDuration.Observe(d.Seconds())
}

// AddExpansions counts nodes expanded by a search in the given scope.
func (m *Metrics) AddExpansions(scope string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.expansions.WithLabelValues(scope).Add(float64(n))
}

// AddRefinements counts refined abstract hops.
func (m *Metrics) AddRefinements(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.refinements.Add(float64(n))
}

// IncDynamic counts one insert or remove.
func (m *Metrics) IncDynamic(op string) {
	if m == nil {
		return
	}
	m.dynamicNodes.WithLabelValues(op).Inc()
}
