// Package metrics exports lrucache statistics as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"go.dw1.io/lrucache"
)

// StatsSource is implemented by every [lrucache.Cache].
type StatsSource interface {
	UpdateStats(s *lrucache.Stats)
}

// Collector is a [prometheus.Collector] reading stats from a cache on every
// scrape.
type Collector struct {
	src StatsSource

	getCalls      *prometheus.Desc
	hits          *prometheus.Desc
	misses        *prometheus.Desc
	creates       *prometheus.Desc
	factoryErrors *prometheus.Desc
	removes       *prometheus.Desc
	evictions     *prometheus.Desc
	expirations   *prometheus.Desc
	cleanupRuns   *prometheus.Desc
	entries       *prometheus.Desc
	cost          *prometheus.Desc
	sizeLimit     *prometheus.Desc
	costLimit     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector for src. Metric names are prefixed with
// namespace and every metric carries a constant "cache" label set to name,
// so several caches can share a registry.
func NewCollector(namespace, name string, src StatsSource) *Collector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "lrucache", metric), help, nil, labels)
	}

	return &Collector{
		src: src,

		getCalls:      desc("get_calls_total", "Total number of TryGet and GetOrCreate calls"),
		hits:          desc("hits_total", "Total number of lookups that found an unexpired entry"),
		misses:        desc("misses_total", "Total number of lookups that found no entry or an expired one"),
		creates:       desc("creates_total", "Total number of entries created by a factory"),
		factoryErrors: desc("factory_errors_total", "Total number of factory calls that returned an error"),
		removes:       desc("removes_total", "Total number of entries removed explicitly"),
		evictions:     desc("evictions_total", "Total number of entries evicted by size or cost limits"),
		expirations:   desc("expirations_total", "Total number of expired entries removed"),
		cleanupRuns:   desc("cleanup_runs_total", "Total number of amortized cleanup passes"),
		entries:       desc("entries", "Current number of entries"),
		cost:          desc("cost", "Current sum of entry sizes"),
		sizeLimit:     desc("size_limit", "Maximum number of entries, 0 when unbounded"),
		costLimit:     desc("cost_limit", "Maximum sum of entry sizes, 0 when unbounded"),
	}
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.getCalls
	ch <- c.hits
	ch <- c.misses
	ch <- c.creates
	ch <- c.factoryErrors
	ch <- c.removes
	ch <- c.evictions
	ch <- c.expirations
	ch <- c.cleanupRuns
	ch <- c.entries
	ch <- c.cost
	ch <- c.sizeLimit
	ch <- c.costLimit
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var s lrucache.Stats
	c.src.UpdateStats(&s)

	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}

	counter(c.getCalls, s.GetCalls)
	counter(c.hits, s.Hits)
	counter(c.misses, s.Misses)
	counter(c.creates, s.Creates)
	counter(c.factoryErrors, s.FactoryErrors)
	counter(c.removes, s.Removes)
	counter(c.evictions, s.Evictions)
	counter(c.expirations, s.Expirations)
	counter(c.cleanupRuns, s.CleanupRuns)
	gauge(c.entries, s.EntriesCount)
	gauge(c.cost, s.TotalCost)
	gauge(c.sizeLimit, s.SizeLimit)
	gauge(c.costLimit, s.CostLimit)
}
