package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	logWriteGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "garmin_ingest",
		Subsystem: "persistence",
		Name:      "last_log_write_timestamp_seconds",
		Help:      "Unix timestamp of the most recent trainings_log row written.",
	})
	aggregateMergeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "garmin_ingest",
		Subsystem: "persistence",
		Name:      "last_aggregate_merge_timestamp_seconds",
		Help:      "Unix timestamp of the most recent weekly aggregate merge.",
	})
)

func init() {
	prometheus.MustRegister(logWriteGauge, aggregateMergeGauge)
}

// RecordLogWrite updates the log-write watermark gauge.
func RecordLogWrite(ts time.Time) {
	if ts.IsZero() {
		return
	}
	logWriteGauge.Set(float64(ts.Unix()))
}

// RecordAggregateMerge updates the aggregate-merge watermark gauge.
func RecordAggregateMerge(ts time.Time) {
	if ts.IsZero() {
		return
	}
	aggregateMergeGauge.Set(float64(ts.Unix()))
}
