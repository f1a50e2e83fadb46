// Package prom provides a Prometheus-backed implementation of
// annforest.MetricsCollector.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/annforest"
)

// Compile-time check that Collector implements annforest.MetricsCollector.
var _ annforest.MetricsCollector = (*Collector)(nil)

// Collector exports build and search metrics to Prometheus.
type Collector struct {
	buildsTotal     *prometheus.CounterVec
	buildDuration   prometheus.Histogram
	indexedVectors  prometheus.Gauge
	searchesTotal   *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	searchRequested prometheus.Histogram
}

// NewCollector creates a Collector registered with the given registerer.
// Pass prometheus.DefaultRegisterer to use the default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		buildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annforest_builds_total",
				Help: "Total number of index builds",
			},
			[]string{"status"},
		),
		buildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "annforest_build_duration_seconds",
				Help:    "Duration of index builds in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
		),
		indexedVectors: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "annforest_indexed_vectors",
				Help: "Number of vectors in the most recently built index",
			},
		),
		searchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annforest_searches_total",
				Help: "Total number of searches",
			},
			[]string{"status"},
		),
		searchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "annforest_search_duration_seconds",
				Help:    "Duration of searches in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		searchRequested: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "annforest_search_requested_neighbors",
				Help:    "Number of neighbors requested per search",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
	}
}

// RecordBuild implements annforest.MetricsCollector.
func (c *Collector) RecordBuild(vectors int, duration time.Duration, err error) {
	c.buildsTotal.WithLabelValues(status(err)).Inc()
	c.buildDuration.Observe(duration.Seconds())

	if err == nil {
		c.indexedVectors.Set(float64(vectors))
	}
}

// RecordSearch implements annforest.MetricsCollector.
func (c *Collector) RecordSearch(k int, duration time.Duration, err error) {
	c.searchesTotal.WithLabelValues(status(err)).Inc()
	c.searchDuration.Observe(duration.Seconds())
	c.searchRequested.Observe(float64(k))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
