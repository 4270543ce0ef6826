// Package prometheus exposes monitor repositories as a Prometheus collector.
//
// The collector is read-only: every scrape takes a snapshot of each monitor in
// the repository. Registering it, and serving the registry, is up to the caller.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/stopwatch/monitor"
	"github.com/ygrebnov/stopwatch/unit"
)

// DefaultNamespace prefixes metric names unless WithNamespace is given.
const DefaultNamespace = "stopwatch"

var labels = []string{"name", "category"}

// Option configures a Collector.
type Option func(*Collector)

// WithNamespace sets the metric name prefix. An empty namespace drops the prefix.
func WithNamespace(ns string) Option {
	return func(c *Collector) { c.namespace = ns }
}

// WithConstLabels attaches constant labels to every exported series.
func WithConstLabels(l prometheus.Labels) Option {
	return func(c *Collector) { c.constLabels = l }
}

// Collector implements prometheus.Collector over a monitor.Repository.
type Collector struct {
	repo        *monitor.Repository
	namespace   string
	constLabels prometheus.Labels

	concurrency *prometheus.Desc
	count       *prometheus.Desc
	sum         *prometheus.Desc
	min         *prometheus.Desc
	max         *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector for repo.
func NewCollector(repo *monitor.Repository, opts ...Option) *Collector {
	c := &Collector{repo: repo, namespace: DefaultNamespace}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(c.namespace, "", name), help, labels, c.constLabels)
	}
	c.concurrency = desc("concurrency", "Executions currently in flight.")
	c.count = desc("performances_count", "Completed executions recorded.")
	c.sum = desc("performances_sum_seconds", "Total duration of completed executions.")
	c.min = desc("performances_min_seconds", "Shortest completed execution.")
	c.max = desc("performances_max_seconds", "Longest completed execution.")
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.concurrency
	ch <- c.count
	ch <- c.sum
	ch <- c.min
	ch <- c.max
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.repo.Snapshots() {
		lv := []string{s.Key.Name, s.Key.Category}
		p := s.Performances

		ch <- prometheus.MustNewConstMetric(c.concurrency, prometheus.GaugeValue, float64(s.Concurrency), lv...)
		ch <- prometheus.MustNewConstMetric(c.count, prometheus.CounterValue, float64(p.Count), lv...)
		ch <- prometheus.MustNewConstMetric(c.sum, prometheus.CounterValue, seconds(p.Sum, s.Unit), lv...)
		if p.Count == 0 {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.min, prometheus.GaugeValue, seconds(p.Min, s.Unit), lv...)
		ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, seconds(p.Max, s.Unit), lv...)
	}
}

// seconds converts v expressed in u. Non-time units are exported unscaled.
func seconds(v int64, u unit.Unit) float64 {
	if !u.Compatible(unit.Seconds) {
		return float64(v)
	}
	return float64(v) * float64(u.Scale()) / float64(unit.Seconds.Scale())
}
