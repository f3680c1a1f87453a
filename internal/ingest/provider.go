// Package ingest converts batches of native health objects into portable
// records and stores them.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/convert"
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/observability"
)

// maxReasons bounds the rejection reasons echoed back to the client.
const maxReasons = 20

// Store persists record rows, reporting which ones were new, and keeps a
// log of ingest requests.
type Store interface {
	InsertRecords(ctx context.Context, rows []models.RecordRow) ([]uuid.UUID, error)
	InsertIngestLog(ctx context.Context, l models.IngestLog) (int64, error)
}

// Publisher forwards newly stored records.
type Publisher interface {
	Publish(ctx context.Context, rows []models.RecordRow) error
}

// Result holds the outcome of an ingest operation.
type Result struct {
	RecordsReceived  int            `json:"records_received"`
	RecordsInserted  int            `json:"records_inserted"`
	RecordsSkipped   int            `json:"records_skipped"`
	RecordsRejected  int            `json:"records_rejected"`
	RecordsPublished int            `json:"records_published,omitempty"`
	RejectedByKind   map[string]int `json:"rejected_by_kind,omitempty"`
	RejectedReasons  []string       `json:"rejected_reasons,omitempty"`
	IDs              []uuid.UUID    `json:"ids,omitempty"`

	Message string `json:"message,omitempty"`
}

func (r *Result) reject(kind models.Kind, index int, err error) {
	r.RecordsRejected++
	if r.RejectedByKind == nil {
		r.RejectedByKind = make(map[string]int)
	}
	r.RejectedByKind[string(kind)]++
	if len(r.RejectedReasons) < maxReasons {
		r.RejectedReasons = append(r.RejectedReasons, fmt.Sprintf("%s[%d]: %v", kind, index, err))
	}
}

// Provider harmonizes native payloads and stores the resulting records.
type Provider struct {
	store   Store
	pub     Publisher
	metrics *observability.Metrics
	log     *slog.Logger
}

// NewProvider creates a Provider. pub and metrics may be nil.
func NewProvider(store Store, pub Publisher, metrics *observability.Metrics, log *slog.Logger) *Provider {
	return &Provider{store: store, pub: pub, metrics: metrics, log: log}
}

// Ingest harmonizes every object in the payload. Objects that fail to decode
// or convert are logged and counted as rejected; the rest are stored.
func (p *Provider) Ingest(ctx context.Context, payload *Payload) (*Result, error) {
	start := time.Now()
	result, err := p.ingestPayload(ctx, payload)
	p.journal(ctx, "payload", start, result, err)
	return result, err
}

func (p *Provider) ingestPayload(ctx context.Context, payload *Payload) (*Result, error) {
	result := &Result{}
	var rows []models.RecordRow

	for _, b := range payload.Data.Batches() {
		for i, raw := range b.Items {
			result.RecordsReceived++

			row, err := p.harmonize(b.Kind, raw)
			if err != nil {
				p.log.Warn("skipping object", "kind", b.Kind, "index", i, "error", err)
				result.reject(b.Kind, i, err)
				continue
			}
			rows = append(rows, row)
		}
	}

	if err := p.persist(ctx, rows, result); err != nil {
		return result, err
	}

	if result.RecordsRejected > 0 {
		kinds := make([]string, 0, len(result.RejectedByKind))
		for k := range result.RejectedByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		result.Message = fmt.Sprintf(
			"%d objects were rejected (%s). Accepted records are stored.",
			result.RecordsRejected, strings.Join(kinds, ", "))
	}
	return result, nil
}

// IngestRecord validates a portable record by dehydrating it and stores it.
func (p *Provider) IngestRecord(ctx context.Context, rec models.Record) (*Result, error) {
	start := time.Now()
	result := &Result{RecordsReceived: 1}
	err := p.ingestRecord(ctx, rec, result)
	p.journal(ctx, "record", start, result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Provider) ingestRecord(ctx context.Context, rec models.Record, result *Result) error {
	_, err := convert.Dehydrate(rec)
	p.metrics.ObserveConversion(rec.RecordKind(), observability.Dehydrate, err)
	if err != nil {
		result.reject(rec.RecordKind(), 0, err)
		return err
	}
	row, err := models.NewRecordRow(rec)
	if err != nil {
		return err
	}
	return p.persist(ctx, []models.RecordRow{row}, result)
}

// journal writes the ingest log entry for one request. Failures are only
// logged.
func (p *Provider) journal(ctx context.Context, source string, start time.Time, result *Result, err error) {
	entry := models.IngestLog{
		Source:     source,
		Status:     "success",
		DurationMs: int(time.Since(start).Milliseconds()),
	}
	if result != nil {
		entry.Received = result.RecordsReceived
		entry.Inserted = result.RecordsInserted
		entry.Skipped = result.RecordsSkipped
		entry.Rejected = result.RecordsRejected
		entry.RejectedByKind = result.RejectedByKind
	}
	if err != nil {
		msg := err.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
	}
	if _, err := p.store.InsertIngestLog(ctx, entry); err != nil {
		p.log.Warn("writing ingest log", "source", source, "error", err)
	}
}

func (p *Provider) harmonize(kind models.Kind, raw []byte) (models.RecordRow, error) {
	var (
		obj healthkit.Object
		rec models.Record
		err error
	)
	obj, err = convert.DecodeObject(kind, raw)
	if err == nil {
		rec, err = convert.Harmonize(obj)
	}
	p.metrics.ObserveConversion(kind, observability.Harmonize, err)
	if err != nil {
		return models.RecordRow{}, err
	}
	return models.NewRecordRow(rec)
}

// persist inserts rows in chunks, then publishes the ones that were new.
func (p *Provider) persist(ctx context.Context, rows []models.RecordRow, result *Result) error {
	const chunk = 500

	var fresh []models.RecordRow
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		part := rows[start:end]

		ids, err := p.store.InsertRecords(ctx, part)
		if err != nil {
			return fmt.Errorf("inserting records: %w", err)
		}
		inserted := make(map[uuid.UUID]bool, len(ids))
		for _, id := range ids {
			inserted[id] = true
		}
		perKind := make(map[models.Kind][2]int)
		for _, r := range part {
			c := perKind[r.Kind]
			if inserted[r.ID] {
				c[0]++
				fresh = append(fresh, r)
				result.IDs = append(result.IDs, r.ID)
			} else {
				c[1]++
			}
			perKind[r.Kind] = c
		}
		for kind, c := range perKind {
			p.metrics.RecordsStored(kind, c[0], c[1])
		}
		result.RecordsInserted += len(ids)
		result.RecordsSkipped += len(part) - len(ids)
	}

	if p.pub == nil || len(fresh) == 0 {
		return nil
	}
	if err := p.pub.Publish(ctx, fresh); err != nil {
		p.log.Error("publishing records", "count", len(fresh), "error", err)
		return nil
	}
	result.RecordsPublished = len(fresh)
	return nil
}
