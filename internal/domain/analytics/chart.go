package analytics

import (
	"math"
	"time"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
)

// ChartPoint is one plotted observation, carrying its originating record
// identity for traceability.
type ChartPoint struct {
	ID           string        `json:"id"`
	LotID        *string       `json:"lotId"`
	Panel        process.Panel `json:"panel"`
	Unit         string        `json:"unit"`
	ShiftDate    *time.Time    `json:"shiftDate"`
	CreatedAt    time.Time     `json:"createdAt"`
	Value        int64         `json:"value"`
	OutOfControl bool          `json:"outOfControl"`
}

// ControlChart is a Shewhart individuals chart: mean center line and
// 3-sigma control limits over a time-ordered series. Limit fields are nil
// when the series is empty.
type ControlChart struct {
	Metric     Metric       `json:"metric"`
	Panel      string       `json:"panel"`
	Count      int          `json:"count"`
	CenterLine *float64     `json:"centerLine"`
	UCL        *float64     `json:"ucl"`
	LCL        *float64     `json:"lcl"`
	StdDev     *float64     `json:"stdDev"`
	Points     []ChartPoint `json:"points"`
}

// BuildControlChart computes a control chart for one metric over a series
// of records ordered by creation time. Records without a value for the
// metric are excluded rather than treated as zero.
//
// The variance uses the sample (n-1) denominator; a single point yields a
// standard deviation of zero. The lower limit is clamped at zero because
// durations cannot be negative; the upper limit is left unclamped. A point
// is out of control when it falls outside [LCL, UCL].
func BuildControlChart(rows []RecordMetrics, metric Metric) ControlChart {
	chart := ControlChart{Metric: metric, Points: []ChartPoint{}}

	var points []ChartPoint
	for _, row := range rows {
		v := metric.valueOf(row)
		if v == nil {
			continue
		}
		points = append(points, ChartPoint{
			ID:        row.ID,
			LotID:     row.LotID,
			Panel:     row.Panel,
			Unit:      row.Unit,
			ShiftDate: row.ShiftDate,
			CreatedAt: row.CreatedAt,
			Value:     *v,
		})
	}
	if len(points) == 0 {
		return chart
	}

	var sum float64
	for _, p := range points {
		sum += float64(p.Value)
	}
	mean := sum / float64(len(points))

	var sqSum float64
	for _, p := range points {
		d := float64(p.Value) - mean
		sqSum += d * d
	}
	denom := float64(len(points) - 1)
	if denom < 1 {
		denom = 1
	}
	stdDev := math.Sqrt(sqSum / denom)

	ucl := mean + 3*stdDev
	lcl := math.Max(mean-3*stdDev, 0)

	for i := range points {
		v := float64(points[i].Value)
		points[i].OutOfControl = v > ucl || v < lcl
	}

	chart.Count = len(points)
	chart.CenterLine = &mean
	chart.UCL = &ucl
	chart.LCL = &lcl
	chart.StdDev = &stdDev
	chart.Points = points
	return chart
}
