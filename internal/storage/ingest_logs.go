package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/hkreporter/internal/models"
)

// InsertIngestLog records the outcome of an ingest request and returns its ID.
func (db *DB) InsertIngestLog(ctx context.Context, l models.IngestLog) (int64, error) {
	var byKind []byte
	if len(l.RejectedByKind) > 0 {
		var err error
		if byKind, err = json.Marshal(l.RejectedByKind); err != nil {
			return 0, fmt.Errorf("encoding rejected kinds: %w", err)
		}
	}

	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO ingest_logs (source, status, received, inserted, skipped, rejected,
		 rejected_by_kind, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		l.Source, l.Status, l.Received, l.Inserted, l.Skipped, l.Rejected,
		byKind, l.DurationMs, l.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting ingest log: %w", err)
	}
	return id, nil
}

// QueryIngestLogs returns the most recent ingest logs.
func (db *DB) QueryIngestLogs(ctx context.Context, limit int) ([]models.IngestLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source, status, received, inserted, skipped, rejected,
		 rejected_by_kind, duration_ms, error_message
		 FROM ingest_logs
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying ingest logs: %w", err)
	}
	defer rows.Close()

	var result []models.IngestLog
	for rows.Next() {
		var (
			l      models.IngestLog
			byKind []byte
		)
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.Source, &l.Status, &l.Received, &l.Inserted,
			&l.Skipped, &l.Rejected, &byKind, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning ingest log: %w", err)
		}
		if len(byKind) > 0 {
			if err := json.Unmarshal(byKind, &l.RejectedByKind); err != nil {
				return nil, fmt.Errorf("decoding rejected kinds for log %d: %w", l.ID, err)
			}
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
