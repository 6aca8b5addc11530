package repository

import (
	"github.com/Gsiblesz/Centro-Caracas/internal/domain/analytics"
	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
)

// RecordRepository is the full persistence surface for stored records: the
// submission-side operations plus the analytics metric projection.
type RecordRepository interface {
	process.RecordRepository
	analytics.SeriesRepository
}
