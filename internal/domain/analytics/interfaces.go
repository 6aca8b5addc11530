package analytics

import (
	"context"
	"time"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
)

// SeriesFilter narrows the metric series a query reads. Nil time bounds
// mean unbounded; an empty panel means all panels.
type SeriesFilter struct {
	Panel process.Panel
	From  *time.Time
	To    *time.Time
}

// SeriesRepository reads the metric projection of stored records, ordered
// by creation time ascending.
type SeriesRepository interface {
	MetricSeries(ctx context.Context, f SeriesFilter) ([]RecordMetrics, error)
}
