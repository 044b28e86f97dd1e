// Package metrics holds the service's Prometheus collectors and a rolling
// per-stage timing summary.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors registered for one server.
type Metrics struct {
	Annotations   *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	Jobs          *prometheus.CounterVec
	TreesPerJob   prometheus.Histogram

	Stages *StageStats
}

// New registers the collectors with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Annotations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "headtree_annotations_total",
			Help: "Trees annotated, by result.",
		}, []string{"result"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "headtree_stage_duration_seconds",
			Help:    "Time spent in each transform stage and annotation step.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~80ms
		}, []string{"stage"}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "headtree_cache_hits_total",
			Help: "Annotation results served from the cache.",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "headtree_cache_misses_total",
			Help: "Annotation requests that missed the cache.",
		}),
		Jobs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "headtree_jobs_total",
			Help: "Finished jobs, by final status.",
		}, []string{"status"}),
		TreesPerJob: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "headtree_trees_per_job",
			Help:    "Number of trees read from each uploaded file.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Stages: NewStageStats(time.Hour),
	}
}

// ObserveStage records one stage timing. It matches the transform observer
// signature. Safe on a nil receiver.
func (m *Metrics) ObserveStage(stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	m.Stages.Record(stage, elapsed)
}

func (m *Metrics) Annotated(result string) {
	if m == nil {
		return
	}
	m.Annotations.WithLabelValues(result).Inc()
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// JobFinished records a job's final status and how many trees it held.
func (m *Metrics) JobFinished(status string, trees int) {
	if m == nil {
		return
	}
	m.Jobs.WithLabelValues(status).Inc()
	m.TreesPerJob.Observe(float64(trees))
}
