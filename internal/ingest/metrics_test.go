package ingest

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchesLabels(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchesLabels(metric *dto.Metric, labels map[string]string) bool {
	for key, want := range labels {
		found := false
		for _, pair := range metric.GetLabel() {
			if pair.GetName() == key && pair.GetValue() == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestProcessBatchRecordsMetrics(t *testing.T) {
	const processedName = "garmin_ingest_batch_activities_processed_total"
	const batchesName = "garmin_ingest_batch_batches_total"

	processedBefore := counterValue(t, processedName, map[string]string{"activity_type": "RUNNING"})
	okBefore := counterValue(t, batchesName, map[string]string{"outcome": "ok"})
	invalidBefore := counterValue(t, batchesName, map[string]string{"outcome": "invalid"})

	f := newFixture(t)
	f.orchestrator.ProcessBatch(context.Background(), []byte(`{"activityDetails": [`+validActivity+`]}`))
	f.orchestrator.ProcessBatch(context.Background(), []byte(`{}`))

	require.Equal(t, processedBefore+1, counterValue(t, processedName, map[string]string{"activity_type": "RUNNING"}))
	require.Equal(t, okBefore+1, counterValue(t, batchesName, map[string]string{"outcome": "ok"}))
	require.Equal(t, invalidBefore+1, counterValue(t, batchesName, map[string]string{"outcome": "invalid"}))
}
