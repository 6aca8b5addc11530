package process

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles record submissions. It owns the lot transition tracker,
// whose lifetime matches the service's.
type Service struct {
	records RecordRepository
	tracker *LotTransitionTracker
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a submission service backed by the given repository.
func NewService(records RecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		records: records,
		tracker: NewLotTransitionTracker(),
		logger:  logger,
		now:     time.Now,
	}
}

// ListFilter is the raw query filter for listing stored records. Dates are
// YYYY-MM-DD shift dates, inclusive on both ends.
type ListFilter struct {
	Panel    string
	LotID    string
	DateFrom string
	DateTo   string
	Take     int
	Skip     int
}

// Submit stores one submission. It resolves the lot id, attaches the
// cross-station transition when the lot's previous station is known, and
// derives the stored metrics. The tracker advances only after the record
// persists, so a failed write never poisons downstream deltas.
func (s *Service) Submit(ctx context.Context, rec Record) (*StoredRecord, error) {
	rec.Panel = NormalizePanel(string(rec.Panel))
	if strings.TrimSpace(rec.Unit) == "" {
		rec.Unit = "sin-unidad"
	}

	lotID := ResolveLotID(rec.Form, rec.Shift)
	rec.Transition = nil
	if lotID != "" {
		if startAt, ok := parseWireTime(rec.Timing.Start); ok {
			rec.Transition = s.tracker.Transition(lotID, rec.Panel, startAt)
		}
	}

	durationMs, deadMs, overallMs := deriveMetrics(rec)
	lote, storedLotID := deriveLot(rec)

	stored := &StoredRecord{
		ID:         uuid.NewString(),
		Panel:      rec.Panel,
		Unit:       rec.Unit,
		Lote:       lote,
		LotID:      storedLotID,
		ShiftDate:  deriveShiftDate(rec),
		DurationMs: durationMs,
		DeadMs:     deadMs,
		OverallMs:  overallMs,
		Data:       rec,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.records.Create(ctx, stored); err != nil {
		return nil, fmt.Errorf("storing record: %w", err)
	}

	if lotID != "" {
		if endAt, ok := parseWireTime(rec.Timing.End); ok {
			s.tracker.RecordCompletion(lotID, rec.Panel, endAt)
		}
	}

	s.logger.Info("record submitted",
		"id", stored.ID, "panel", stored.Panel, "unit", stored.Unit,
		"tracked", lotID != "")
	return stored, nil
}

// List returns stored records matching the filter, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]StoredRecord, error) {
	opts, err := f.toOptions()
	if err != nil {
		return nil, err
	}
	records, err := s.records.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// Delete removes one stored record by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("record deleted", "id", id)
	return nil
}

// DeleteAll wipes every stored record and returns how many were removed.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.records.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting records: %w", err)
	}
	s.logger.Info("records wiped", "count", n)
	return n, nil
}

func (f ListFilter) toOptions() (ListOptions, error) {
	if f.Take < 0 || f.Skip < 0 {
		return ListOptions{}, fmt.Errorf("%w: negative take or skip", ErrInvalidFilter)
	}
	opts := ListOptions{
		Panel: Panel(strings.TrimSpace(f.Panel)),
		LotID: strings.TrimSpace(f.LotID),
		Take:  f.Take,
		Skip:  f.Skip,
	}
	if f.DateFrom != "" {
		day, err := time.ParseInLocation("2006-01-02", f.DateFrom, time.UTC)
		if err != nil {
			return ListOptions{}, fmt.Errorf("%w: desde %q", ErrInvalidFilter, f.DateFrom)
		}
		opts.From = &day
	}
	if f.DateTo != "" {
		day, err := time.ParseInLocation("2006-01-02", f.DateTo, time.UTC)
		if err != nil {
			return ListOptions{}, fmt.Errorf("%w: hasta %q", ErrInvalidFilter, f.DateTo)
		}
		endOfDay := day.Add(24*time.Hour - time.Millisecond)
		opts.To = &endOfDay
	}
	return opts, nil
}
