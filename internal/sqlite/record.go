package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gsiblesz/Centro-Caracas/internal/domain/analytics"
	"github.com/Gsiblesz/Centro-Caracas/internal/domain/process"
	"github.com/Gsiblesz/Centro-Caracas/internal/repository"
)

// RecordRepository implements repository.RecordRepository for SQLite
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

const storedColumns = `id, panel, unit, lote, lot_id, shift_date, duration_ms, dead_ms, overall_ms, data, created_at`

// Create persists a stored record, including the full submission payload
// as JSON.
func (r *RecordRepository) Create(ctx context.Context, rec *process.StoredRecord) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("failed to encode record data: %w", err)
	}

	query := `
		INSERT INTO registros (` + storedColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Panel),
		rec.Unit,
		rec.Lote,
		rec.LotID,
		rec.ShiftDate,
		rec.DurationMs,
		rec.DeadMs,
		rec.OverallMs,
		string(data),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	return nil
}

// Get retrieves a stored record by ID
func (r *RecordRepository) Get(ctx context.Context, id string) (*process.StoredRecord, error) {
	query := `SELECT ` + storedColumns + ` FROM registros WHERE id = ?`

	rec, err := scanStored(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

// List retrieves stored records matching the options, newest first.
func (r *RecordRepository) List(ctx context.Context, opts process.ListOptions) ([]process.StoredRecord, error) {
	query := `SELECT ` + storedColumns + ` FROM registros`
	var conds []string
	var args []any

	if opts.Panel != "" {
		conds = append(conds, "panel = ?")
		args = append(args, string(opts.Panel))
	}
	if opts.LotID != "" {
		conds = append(conds, "lot_id = ?")
		args = append(args, opts.LotID)
	}
	if opts.From != nil {
		conds = append(conds, "shift_date >= ?")
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		conds = append(conds, "shift_date <= ?")
		args = append(args, *opts.To)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if opts.Take > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Take)
	} else if opts.Skip > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query += " LIMIT -1"
	}
	if opts.Skip > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Skip)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []process.StoredRecord
	for rows.Next() {
		rec, err := scanStored(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// Delete removes one stored record
func (r *RecordRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registros WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteAll removes every stored record and returns the deleted count
func (r *RecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registros`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected, nil
}

// MetricSeries reads the analytics projection ordered by creation time
// ascending, the order control charts require.
func (r *RecordRepository) MetricSeries(ctx context.Context, f analytics.SeriesFilter) ([]analytics.RecordMetrics, error) {
	query := `SELECT id, lot_id, panel, unit, shift_date, created_at, duration_ms, dead_ms, overall_ms FROM registros`
	var conds []string
	var args []any

	if f.Panel != "" {
		conds = append(conds, "panel = ?")
		args = append(args, string(f.Panel))
	}
	if f.From != nil {
		conds = append(conds, "shift_date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "shift_date <= ?")
		args = append(args, *f.To)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric series: %w", err)
	}
	defer rows.Close()

	var series []analytics.RecordMetrics
	for rows.Next() {
		var (
			row       analytics.RecordMetrics
			panel     string
			lotID     sql.NullString
			shiftDate sql.NullTime
			duration  sql.NullInt64
			dead      sql.NullInt64
			overall   sql.NullInt64
		)
		if err := rows.Scan(&row.ID, &lotID, &panel, &row.Unit, &shiftDate,
			&row.CreatedAt, &duration, &dead, &overall); err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}
		row.Panel = process.Panel(panel)
		if lotID.Valid {
			row.LotID = &lotID.String
		}
		if shiftDate.Valid {
			t := shiftDate.Time
			row.ShiftDate = &t
		}
		if duration.Valid {
			row.DurationMs = &duration.Int64
		}
		if dead.Valid {
			row.DeadMs = &dead.Int64
		}
		if overall.Valid {
			row.OverallMs = &overall.Int64
		}
		series = append(series, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metric series: %w", err)
	}
	return series, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStored(row rowScanner) (*process.StoredRecord, error) {
	var (
		rec       process.StoredRecord
		panel     string
		lote      sql.NullString
		lotID     sql.NullString
		shiftDate sql.NullTime
		duration  sql.NullInt64
		dead      sql.NullInt64
		overall   sql.NullInt64
		data      string
	)
	err := row.Scan(&rec.ID, &panel, &rec.Unit, &lote, &lotID, &shiftDate,
		&duration, &dead, &overall, &data, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.Panel = process.Panel(panel)
	if lote.Valid {
		rec.Lote = &lote.String
	}
	if lotID.Valid {
		rec.LotID = &lotID.String
	}
	if shiftDate.Valid {
		t := shiftDate.Time
		rec.ShiftDate = &t
	}
	if duration.Valid {
		rec.DurationMs = &duration.Int64
	}
	if dead.Valid {
		rec.DeadMs = &dead.Int64
	}
	if overall.Valid {
		rec.OverallMs = &overall.Int64
	}
	if err := json.Unmarshal([]byte(data), &rec.Data); err != nil {
		return nil, fmt.Errorf("failed to decode record data: %w", err)
	}
	return &rec, nil
}
