package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hpastar/metrics"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveBuild(20 * time.Millisecond)
	m.SetLevelSize("1", 81, 406)
	m.ObserveQuery(metrics.ResultFound, time.Millisecond)
	m.ObserveQuery(metrics.ResultFound, time.Millisecond)
	m.ObserveQuery(metrics.ResultUnreachable, time.Millisecond)
	m.AddExpansions(metrics.ScopeAbstract, 12)
	m.AddExpansions(metrics.ScopeAbstract, 0)
	m.AddRefinements(3)
	m.IncDynamic(metrics.OpInsert)

	n, err := testutil.GatherAndCount(reg, "hpa_queries_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "two result label values")

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				byName[f.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				byName[f.GetName()] += metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 3.0, byName["hpa_queries_total"])
	assert.Equal(t, 12.0, byName["hpa_search_expansions_total"])
	assert.Equal(t, 3.0, byName["hpa_refinements_total"])
	assert.Equal(t, 1.0, byName["hpa_dynamic_nodes_total"])
	assert.Equal(t, 81.0, byName["hpa_abstract_nodes"])
	assert.Equal(t, 406.0, byName["hpa_abstract_edges"])
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveBuild(time.Second)
		m.SetLevelSize("2", 1, 2)
		m.ObserveQuery(metrics.ResultError, time.Second)
		m.AddExpansions(metrics.ScopeConcrete, 5)
		m.AddRefinements(1)
		m.IncDynamic(metrics.OpRemove)
	})
}

func TestNew_PrivateRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(nil)
		metrics.New(nil)
	})
}
