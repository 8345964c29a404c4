package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "httpool_connections_accepted_total",
		Help: "The total number of TCP connections accepted",
	})

	ConnectionsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "httpool_connections_rejected_total",
		Help: "The total number of connections rejected before dispatch",
	}, []string{"reason"})

	JobsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "httpool_jobs_submitted_total",
		Help: "The total number of jobs submitted to the worker pool",
	})

	JobsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "httpool_jobs_completed_total",
		Help: "The total number of jobs the worker pool ran to completion",
	})

	JobPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "httpool_job_panics_total",
		Help: "The total number of panics recovered inside jobs",
	})

	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "httpool_responses_total",
		Help: "The total number of HTTP responses written, by status code",
	}, []string{"status"})

	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "httpool_request_duration_seconds",
		Help:    "Time from dequeue to response written, in seconds",
		Buckets: prometheus.DefBuckets,
	})

	PoolWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "httpool_worker_pool_workers",
		Help: "Number of workers in the pool",
	})

	PoolQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "httpool_worker_pool_queue_depth",
		Help: "Current number of messages waiting in the pool queue",
	})

	PageCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "httpool_page_cache_size",
		Help: "Current number of pages held in the page cache",
	})
)
