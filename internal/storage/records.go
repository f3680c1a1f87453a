package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/models"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// RecordFilter selects stored records. Zero fields do not filter.
type RecordFilter struct {
	Kind       models.Kind
	Identifier string
	Window     healthkit.Window
	Limit      int
}

const defaultLimit = 1000

// InsertRecords batch-inserts record rows and returns the ids of the rows
// actually inserted; duplicates of stored records are skipped.
func (db *DB) InsertRecords(ctx context.Context, rows []models.RecordRow) ([]uuid.UUID, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	query := `INSERT INTO records (id, kind, identifier, start_time, end_time, payload) VALUES `
	args := make([]any, 0, len(rows)*6)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 6
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, r.ID, string(r.Kind), r.Identifier, r.StartTime, r.EndTime, []byte(r.Payload))
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING RETURNING id"

	result, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inserting records: %w", err)
	}
	defer result.Close()

	var inserted []uuid.UUID
	for result.Next() {
		var id uuid.UUID
		if err := result.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning inserted id: %w", err)
		}
		inserted = append(inserted, id)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("inserting records: %w", err)
	}
	return inserted, nil
}

// buildRecordQuery renders the SELECT for a filter.
func buildRecordQuery(f RecordFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.Identifier != "" {
		add("identifier = $%d", f.Identifier)
	}
	w := f.Window
	if w.Strict {
		if !w.Start.IsZero() {
			add("start_time >= $%d", w.Start)
		}
		if !w.End.IsZero() {
			add("end_time <= $%d", w.End)
		}
	} else {
		if !w.Start.IsZero() {
			add("end_time >= $%d", w.Start)
		}
		if !w.End.IsZero() {
			add("start_time <= $%d", w.End)
		}
	}

	query := `SELECT id, kind, identifier, start_time, end_time, payload, created_at FROM records`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY start_time DESC NULLS LAST, id LIMIT $%d", len(args))
	return query, args
}

// QueryRecords retrieves records matching the filter, newest first.
func (db *DB) QueryRecords(ctx context.Context, f RecordFilter) ([]models.RecordRow, error) {
	query, args := buildRecordQuery(f)
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []models.RecordRow
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	return out, nil
}

// GetRecord retrieves a single record by id.
func (db *DB) GetRecord(ctx context.Context, id uuid.UUID) (*models.RecordRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, kind, identifier, start_time, end_time, payload, created_at
		 FROM records WHERE id = $1`, id)
	r, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRecord(row pgx.Row) (models.RecordRow, error) {
	var (
		r       models.RecordRow
		kind    string
		payload []byte
	)
	if err := row.Scan(&r.ID, &kind, &r.Identifier, &r.StartTime, &r.EndTime, &payload, &r.CreatedAt); err != nil {
		return r, fmt.Errorf("scanning record: %w", err)
	}
	r.Kind = models.Kind(kind)
	r.Payload = payload
	return r, nil
}
