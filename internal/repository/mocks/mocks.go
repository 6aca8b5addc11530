package mocks

import (
	"context"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/analytics"
	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
	"github.com/stretchr/testify/mock"
)

// RecordRepository is a mock for repository.RecordRepository.
type RecordRepository struct {
	mock.Mock
}

func (m *RecordRepository) Create(ctx context.Context, rec *process.StoredRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecordRepository) Get(ctx context.Context, id string) (*process.StoredRecord, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*process.StoredRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) List(ctx context.Context, opts process.ListOptions) ([]process.StoredRecord, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]process.StoredRecord); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RecordRepository) MetricSeries(ctx context.Context, f analytics.SeriesFilter) ([]analytics.RecordMetrics, error) {
	args := m.Called(ctx, f)
	if rows, ok := args.Get(0).([]analytics.RecordMetrics); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}
