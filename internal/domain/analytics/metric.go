package analytics

import (
	"fmt"
	"time"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
)

// Metric selects which stored duration a chart or summary analyzes. The
// set is closed; free-form metric names are rejected at the boundary.
type Metric string

const (
	MetricDuration Metric = "durationMs"
	MetricDead     Metric = "deadMs"
	MetricOverall  Metric = "overallMs"
)

// ParseMetric validates a metric name from the query boundary. An empty
// name defaults to the overall metric; anything else unknown fails.
func ParseMetric(raw string) (Metric, error) {
	switch Metric(raw) {
	case "":
		return MetricOverall, nil
	case MetricDuration, MetricDead, MetricOverall:
		return Metric(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMetric, raw)
	}
}

// RecordMetrics is the analytics projection of a stored record: its
// identity plus the three derived duration metrics. Nil values mean the
// record carried no usable number for that metric.
type RecordMetrics struct {
	ID         string
	LotID      *string
	Panel      process.Panel
	Unit       string
	ShiftDate  *time.Time
	CreatedAt  time.Time
	DurationMs *int64
	DeadMs     *int64
	OverallMs  *int64
}

// valueOf extracts this metric's value from a projected record.
func (m Metric) valueOf(row RecordMetrics) *int64 {
	switch m {
	case MetricDuration:
		return row.DurationMs
	case MetricDead:
		return row.DeadMs
	case MetricOverall:
		return row.OverallMs
	}
	return nil
}
