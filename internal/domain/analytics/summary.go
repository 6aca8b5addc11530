package analytics

// MetricSummary holds avg/min/max over the present values of one metric.
// All three are nil when no record carried a value: no data is not the
// same as a zero duration.
type MetricSummary struct {
	Avg *float64 `json:"avg"`
	Min *int64   `json:"min"`
	Max *int64   `json:"max"`
}

// Summary aggregates all three metrics over a filtered record set.
type Summary struct {
	Count    int           `json:"count"`
	Duration MetricSummary `json:"duration"`
	Dead     MetricSummary `json:"dead"`
	Overall  MetricSummary `json:"overall"`
}

// Summarize computes per-metric avg/min/max over the records' present
// values, plus the total record count.
func Summarize(rows []RecordMetrics) Summary {
	return Summary{
		Count:    len(rows),
		Duration: summarizeMetric(rows, MetricDuration),
		Dead:     summarizeMetric(rows, MetricDead),
		Overall:  summarizeMetric(rows, MetricOverall),
	}
}

func summarizeMetric(rows []RecordMetrics, metric Metric) MetricSummary {
	var (
		sum      float64
		min, max int64
		n        int
	)
	for _, row := range rows {
		v := metric.valueOf(row)
		if v == nil {
			continue
		}
		if n == 0 || *v < min {
			min = *v
		}
		if n == 0 || *v > max {
			max = *v
		}
		sum += float64(*v)
		n++
	}
	if n == 0 {
		return MetricSummary{}
	}
	avg := sum / float64(n)
	return MetricSummary{Avg: &avg, Min: &min, Max: &max}
}
