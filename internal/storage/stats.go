package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/hkreporter/internal/models"
)

// DataStats holds aggregate statistics about all stored records.
type DataStats struct {
	TotalRecords int64       `json:"total_records"`
	EarliestData *time.Time  `json:"earliest_data"`
	LatestData   *time.Time  `json:"latest_data"`
	ByKind       []KindCount `json:"records_by_kind"`
}

// KindCount is the number of stored records of one kind.
type KindCount struct {
	Kind  models.Kind `json:"kind"`
	Count int64       `json:"count"`
}

// CountByKind returns the number of stored records per kind, largest first.
func (db *DB) CountByKind(ctx context.Context) ([]KindCount, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT kind, COUNT(*) FROM records GROUP BY kind ORDER BY COUNT(*) DESC, kind`)
	if err != nil {
		return nil, fmt.Errorf("counting records by kind: %w", err)
	}
	defer rows.Close()

	var out []KindCount
	for rows.Next() {
		var (
			kind string
			c    KindCount
		)
		if err := rows.Scan(&kind, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning kind count: %w", err)
		}
		c.Kind = models.Kind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDataStats returns aggregate statistics for the stored records.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(start_time), MAX(end_time) FROM records`,
	).Scan(&stats.TotalRecords, &stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying record totals: %w", err)
	}

	stats.ByKind, err = db.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
