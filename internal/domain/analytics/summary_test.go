package analytics_test

import (
	"testing"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/analytics"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	s := analytics.Summarize(nil)

	require.Zero(t, s.Count)
	for _, m := range []analytics.MetricSummary{s.Duration, s.Dead, s.Overall} {
		require.Nil(t, m.Avg)
		require.Nil(t, m.Min)
		require.Nil(t, m.Max)
	}
}

func TestSummarize_AvgMinMax(t *testing.T) {
	rows := []analytics.RecordMetrics{
		metricRow("a", 100),
		metricRow("b", 300),
		metricRow("c", 200),
	}

	s := analytics.Summarize(rows)

	require.Equal(t, 3, s.Count)
	require.InDelta(t, 200, *s.Duration.Avg, 1e-9)
	require.Equal(t, int64(100), *s.Duration.Min)
	require.Equal(t, int64(300), *s.Duration.Max)
}

func TestSummarize_MissingValuesExcludedPerMetric(t *testing.T) {
	dead := int64(50)
	rows := []analytics.RecordMetrics{
		metricRow("a", 100),
		{ID: "dead-only", DeadMs: &dead},
	}

	s := analytics.Summarize(rows)

	require.Equal(t, 2, s.Count, "count covers all records, present value or not")
	require.InDelta(t, 100, *s.Duration.Avg, 1e-9, "nil duration excluded from the average")
	require.Equal(t, int64(50), *s.Dead.Min)
	require.Equal(t, int64(50), *s.Dead.Max)
}

func TestSummarize_ZeroIsAValue(t *testing.T) {
	rows := []analytics.RecordMetrics{metricRow("a", 0)}

	s := analytics.Summarize(rows)

	require.NotNil(t, s.Duration.Avg)
	require.Zero(t, *s.Duration.Avg)
	require.Zero(t, *s.Duration.Min)
}
