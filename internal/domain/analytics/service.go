package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
)

// Service answers analytics queries over the stored record set. The
// engines themselves are pure; the service validates the boundary, fetches
// a snapshot, and labels the result.
type Service struct {
	records SeriesRepository
	logger  *slog.Logger
}

// NewService creates an analytics query service.
func NewService(records SeriesRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{records: records, logger: logger}
}

// Query is a raw analytics filter from the transport boundary. Metric is a
// metric name (empty defaults to overallMs); dates are YYYY-MM-DD shift
// dates, inclusive.
type Query struct {
	Panel    string
	Metric   string
	DateFrom string
	DateTo   string
}

// ControlChart validates the query, fetches the ordered metric series, and
// computes the Shewhart chart. Validation failures surface before any
// record is read.
func (s *Service) ControlChart(ctx context.Context, q Query) (*ControlChart, error) {
	metric, err := ParseMetric(q.Metric)
	if err != nil {
		return nil, err
	}
	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}

	rows, err := s.records.MetricSeries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading metric series: %w", err)
	}

	chart := BuildControlChart(rows, metric)
	chart.Panel = panelLabel(filter.Panel)
	s.logger.Debug("control chart computed",
		"metric", metric, "panel", chart.Panel, "count", chart.Count)
	return &chart, nil
}

// Summary validates the query, fetches the metric series, and aggregates
// avg/min/max per metric.
func (s *Service) Summary(ctx context.Context, q Query) (*Summary, error) {
	filter, err := q.toFilter()
	if err != nil {
		return nil, err
	}

	rows, err := s.records.MetricSeries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading metric series: %w", err)
	}

	summary := Summarize(rows)
	return &summary, nil
}

func (q Query) toFilter() (SeriesFilter, error) {
	filter := SeriesFilter{Panel: process.Panel(strings.TrimSpace(q.Panel))}
	if filter.Panel == "all" {
		filter.Panel = ""
	}
	if q.DateFrom != "" {
		day, err := time.ParseInLocation("2006-01-02", q.DateFrom, time.UTC)
		if err != nil {
			return SeriesFilter{}, fmt.Errorf("%w: desde %q", ErrInvalidDate, q.DateFrom)
		}
		filter.From = &day
	}
	if q.DateTo != "" {
		day, err := time.ParseInLocation("2006-01-02", q.DateTo, time.UTC)
		if err != nil {
			return SeriesFilter{}, fmt.Errorf("%w: hasta %q", ErrInvalidDate, q.DateTo)
		}
		endOfDay := day.Add(24*time.Hour - time.Millisecond)
		filter.To = &endOfDay
	}
	return filter, nil
}

func panelLabel(p process.Panel) string {
	if p == "" {
		return "all"
	}
	return string(p)
}
