// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EnhancementScenarios = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancement_scenarios_total",
			Help: "Enhanced queries by detected scenario",
		},
		[]string{"scenario"},
	)

	EnhancementConfidence = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enhancement_confidence_score",
			Help:    "Aggregated source confidence per enhanced query",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		},
		[]string{"level"},
	)

	EscalationsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancement_escalations_total",
			Help: "Escalation decisions by kind (required or suggested)",
		},
		[]string{"kind", "urgency"},
	)

	TemplateCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_cache_requests_total",
			Help: "Template expansion cache lookups by result",
		},
		[]string{"result"},
	)
)
