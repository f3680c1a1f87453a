package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecordRow is a row ready for insertion into the records table.
type RecordRow struct {
	ID         uuid.UUID       `json:"id"`
	Kind       Kind            `json:"kind"`
	Identifier string          `json:"identifier"`
	StartTime  *time.Time      `json:"start_time,omitempty"`
	EndTime    *time.Time      `json:"end_time,omitempty"`
	Payload    json.RawMessage `json:"record"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewRecordRow serializes a record for storage under a fresh id.
func NewRecordRow(rec Record) (RecordRow, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return RecordRow{}, fmt.Errorf("encoding %s record: %w", rec.RecordKind(), err)
	}
	start, end, err := rec.Span()
	if err != nil {
		return RecordRow{}, fmt.Errorf("%s record span: %w", rec.RecordKind(), err)
	}
	row := RecordRow{
		ID:         uuid.New(),
		Kind:       rec.RecordKind(),
		Identifier: rec.TypeIdentifier(),
		Payload:    payload,
	}
	if !start.IsZero() {
		row.StartTime = &start
	}
	if !end.IsZero() {
		row.EndTime = &end
	}
	return row, nil
}

// IngestLog is the outcome of one ingest request.
type IngestLog struct {
	ID             int64          `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	Source         string         `json:"source"`
	Status         string         `json:"status"`
	Received       int            `json:"received"`
	Inserted       int            `json:"inserted"`
	Skipped        int            `json:"skipped"`
	Rejected       int            `json:"rejected"`
	RejectedByKind map[string]int `json:"rejected_by_kind,omitempty"`
	DurationMs     int            `json:"duration_ms"`
	ErrorMessage   *string        `json:"error_message,omitempty"`
}
