package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.dw1.io/lrucache"
	"go.dw1.io/lrucache/metrics"
)

func newCache(t *testing.T) *lrucache.Cache[string, int] {
	t.Helper()

	opts := lrucache.DefaultOptions()
	opts.SizeLimit = 2
	c := lrucache.New[string, int](opts)

	for i, k := range []string{"a", "b", "c"} {
		_, err := c.GetOrCreate(k, func() (int, error) { return i, nil }, nil)
		require.NoError(t, err)
	}
	c.TryGet("c")
	c.TryGet("a")

	return c
}

func TestCollectorCount(t *testing.T) {
	c := metrics.NewCollector("app", "users", newCache(t))

	assert.Equal(t, 13, testutil.CollectAndCount(c))
}

func TestCollectorValues(t *testing.T) {
	c := metrics.NewCollector("app", "users", newCache(t))

	expected := `
# HELP app_lrucache_hits_total Total number of lookups that found an unexpired entry
# TYPE app_lrucache_hits_total counter
app_lrucache_hits_total{cache="users"} 1
# HELP app_lrucache_misses_total Total number of lookups that found no entry or an expired one
# TYPE app_lrucache_misses_total counter
app_lrucache_misses_total{cache="users"} 4
# HELP app_lrucache_evictions_total Total number of entries evicted by size or cost limits
# TYPE app_lrucache_evictions_total counter
app_lrucache_evictions_total{cache="users"} 1
# HELP app_lrucache_entries Current number of entries
# TYPE app_lrucache_entries gauge
app_lrucache_entries{cache="users"} 2
# HELP app_lrucache_size_limit Maximum number of entries, 0 when unbounded
# TYPE app_lrucache_size_limit gauge
app_lrucache_size_limit{cache="users"} 2
`

	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"app_lrucache_hits_total",
		"app_lrucache_misses_total",
		"app_lrucache_evictions_total",
		"app_lrucache_entries",
		"app_lrucache_size_limit",
	)
	require.NoError(t, err)
}

func TestCollectorRegistry(t *testing.T) {
	cache := newCache(t)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(metrics.NewCollector("", "users", cache)))
	require.NoError(t, reg.Register(metrics.NewCollector("", "sessions", lrucache.New[string, int](lrucache.DefaultOptions()))))

	families, err := reg.Gather()
	require.NoError(t, err)

	entries := findFamily(t, families, "lrucache_entries")
	require.Len(t, entries.GetMetric(), 2)

	got := make(map[string]float64)
	for _, m := range entries.GetMetric() {
		require.Len(t, m.GetLabel(), 1)
		got[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
	}
	assert.Equal(t, map[string]float64{"users": 2, "sessions": 0}, got)

	// Values are read on every scrape.
	cache.Clear()
	families, err = reg.Gather()
	require.NoError(t, err)

	for _, m := range findFamily(t, families, "lrucache_entries").GetMetric() {
		assert.Zero(t, m.GetGauge().GetValue())
	}
}

func findFamily(t *testing.T, families []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	require.Failf(t, "metric family not found", "name %q", name)

	return nil
}
