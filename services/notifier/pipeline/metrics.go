package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the notification pipeline, served on /metrics.
var (
	recordsDecodedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_records_decoded_total",
		Help: "Total number of stream records decoded successfully",
	})

	decodeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_decode_failures_total",
		Help: "Total number of stream records that failed to decode",
	})

	notificationsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_notifications_published_total",
		Help: "Total number of restaurant notifications published",
	})

	eventsEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_derived_events_emitted_total",
		Help: "Total number of restaurant_notified events appended to the stream",
	})

	stepFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_step_failures_total",
		Help: "Total number of per-record failures by pipeline step",
	}, []string{"step"})

	batchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "notifier_batch_duration_seconds",
		Help:    "Duration of one batch through the pipeline",
		Buckets: prometheus.DefBuckets,
	})
)
