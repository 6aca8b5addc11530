package process

import (
	"context"
	"time"
)

// ListOptions filters a stored-record listing. Nil time bounds mean
// unbounded; Take <= 0 means no limit.
type ListOptions struct {
	Panel Panel
	LotID string
	From  *time.Time
	To    *time.Time
	Take  int
	Skip  int
}

// RecordRepository provides persistence for submitted records.
type RecordRepository interface {
	Create(ctx context.Context, rec *StoredRecord) error
	Get(ctx context.Context, id string) (*StoredRecord, error)
	List(ctx context.Context, opts ListOptions) ([]StoredRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
