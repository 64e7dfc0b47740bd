// Package metrics exposes Prometheus metrics for pipeline runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"video-stats-updater/domain/model"
)

// Collector records stage and run outcomes.
type Collector struct {
	gatherer prometheus.Gatherer

	stages        *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// NewCollector registers the metrics on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return NewCollectorWith(reg, reg)
}

// NewCollectorWith registers on reg and serves from gatherer.
func NewCollectorWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		gatherer: gatherer,
		stages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "video_stats_stage_total",
			Help: "Stage completions by stage, result and error kind",
		}, []string{"stage", "result", "kind"}),
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "video_stats_stage_duration_seconds",
			Help:    "Stage duration",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "video_stats_runs_total",
			Help: "Pipeline runs by final state",
		}, []string{"state"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "video_stats_thumbnail_cache_total",
			Help: "Thumbnail cache lookups by result",
		}, []string{"result"}),
	}
}

// StageFinished records one stage result.
func (c *Collector) StageFinished(result model.StageResult, elapsed time.Duration) {
	outcome := "ok"
	if !result.OK {
		outcome = "failed"
	}
	c.stages.WithLabelValues(string(result.Stage), outcome, result.ErrorKind).Inc()
	c.stageDuration.WithLabelValues(string(result.Stage)).Observe(elapsed.Seconds())
}

// RunFinished records the final state of a run.
func (c *Collector) RunFinished(state model.PipelineState) {
	c.runs.WithLabelValues(string(state)).Inc()
}

// CacheLookup records a thumbnail cache hit or miss.
func (c *Collector) CacheLookup(hit bool) {
	if hit {
		c.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	c.cacheLookups.WithLabelValues("miss").Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
