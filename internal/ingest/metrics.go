package ingest

import (
	"github.com/prometheus/client_golang/prometheus"

	"example.com/ingest/internal/domain"
)

var (
	batchesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "garmin_ingest",
		Subsystem: "batch",
		Name:      "batches_total",
		Help:      "Number of processed batches grouped by outcome.",
	}, []string{"outcome"})

	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "garmin_ingest",
		Subsystem: "batch",
		Name:      "activities_processed_total",
		Help:      "Number of activities fully dispatched to all three sinks.",
	}, []string{"activity_type"})

	skippedMissingUserCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "garmin_ingest",
		Subsystem: "batch",
		Name:      "activities_skipped_missing_user_total",
		Help:      "Number of activities skipped because the payload carried no userId.",
	})

	resolutionErrorCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "garmin_ingest",
		Subsystem: "batch",
		Name:      "identity_resolution_errors_total",
		Help:      "Number of activities skipped because identity resolution failed.",
	})

	dispatchErrorCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "garmin_ingest",
		Subsystem: "batch",
		Name:      "dispatch_errors_total",
		Help:      "Number of activities whose downstream dispatch was abandoned after a sink failure.",
	})
)

func init() {
	prometheus.MustRegister(
		batchesCounter,
		processedCounter,
		skippedMissingUserCounter,
		resolutionErrorCounter,
		dispatchErrorCounter,
	)
}

func recordBatch(outcome string) {
	batchesCounter.WithLabelValues(outcome).Inc()
}

func recordProcessed(activityType domain.ActivityType) {
	processedCounter.WithLabelValues(string(activityType)).Inc()
}

func recordSkippedMissingUser() {
	skippedMissingUserCounter.Inc()
}

func recordResolutionError() {
	resolutionErrorCounter.Inc()
}

func recordDispatchError() {
	dispatchErrorCounter.Inc()
}
