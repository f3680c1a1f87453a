package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/models"
)

const heartRate = `{
	"quantityType": "HKQuantityTypeIdentifierHeartRate",
	"quantity": {"value": 64, "unit": "count/min"},
	"startDate": "2024-03-01T08:00:00+01:00",
	"endDate": "2024-03-01T08:00:00+01:00",
	"sourceRevision": {"source": {"name": "Watch", "bundleIdentifier": "com.apple.health"}, "operatingSystemVersion": {"majorVersion": 10, "minorVersion": 3, "patchVersion": 1}}
}`

const sleep = `{
	"categoryType": "HKCategoryTypeIdentifierSleepAnalysis",
	"value": 1,
	"startDate": "2024-03-01T00:00:00Z",
	"endDate": "2024-03-01T06:00:00Z",
	"sourceRevision": {"source": {"name": "Watch", "bundleIdentifier": "com.apple.health"}, "operatingSystemVersion": {"majorVersion": 10, "minorVersion": 3, "patchVersion": 1}}
}`

// fakeStore inserts every row whose payload it has not seen.
type fakeStore struct {
	seen map[string]bool
	rows []models.RecordRow
	logs []models.IngestLog
	err  error
}

func (f *fakeStore) InsertIngestLog(_ context.Context, l models.IngestLog) (int64, error) {
	f.logs = append(f.logs, l)
	return int64(len(f.logs)), nil
}

func (f *fakeStore) InsertRecords(_ context.Context, rows []models.RecordRow) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	var ids []uuid.UUID
	for _, r := range rows {
		key := string(r.Payload)
		if f.seen[key] {
			continue
		}
		f.seen[key] = true
		f.rows = append(f.rows, r)
		ids = append(ids, r.ID)
	}
	return ids, nil
}

type fakePublisher struct {
	rows []models.RecordRow
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, rows []models.RecordRow) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func payload(quantities, categories []string) *Payload {
	p := &Payload{}
	for _, q := range quantities {
		p.Data.QuantitySamples = append(p.Data.QuantitySamples, json.RawMessage(q))
	}
	for _, c := range categories {
		p.Data.CategorySamples = append(p.Data.CategorySamples, json.RawMessage(c))
	}
	return p
}

// TestIngestStoresAndPublishes verifies accepted objects are stored once and
// only new rows are published.
func TestIngestStoresAndPublishes(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	p := NewProvider(store, pub, nil, discard())

	res, err := p.Ingest(context.Background(), payload([]string{heartRate, heartRate}, []string{sleep}))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.RecordsReceived != 3 {
		t.Errorf("received = %d, want 3", res.RecordsReceived)
	}
	if res.RecordsInserted != 2 || res.RecordsSkipped != 1 {
		t.Errorf("inserted/skipped = %d/%d, want 2/1", res.RecordsInserted, res.RecordsSkipped)
	}
	if len(pub.rows) != 2 || res.RecordsPublished != 2 {
		t.Errorf("published = %d (result %d), want 2", len(pub.rows), res.RecordsPublished)
	}
	if store.rows[0].Kind != models.KindQuantity || store.rows[0].Identifier != "HKQuantityTypeIdentifierHeartRate" {
		t.Errorf("first row = %s %s", store.rows[0].Kind, store.rows[0].Identifier)
	}
	if store.rows[1].StartTime == nil || store.rows[1].EndTime == nil {
		t.Error("category row has no span")
	}
	if res.Message != "" {
		t.Errorf("Message = %q, want empty", res.Message)
	}
}

// TestIngestRejects verifies failing objects are counted per kind and skipped.
func TestIngestRejects(t *testing.T) {
	store := &fakeStore{}
	p := NewProvider(store, nil, nil, discard())

	badUnit := `{"quantityType": "HKQuantityTypeIdentifierHeartRate", "quantity": {"value": 1, "unit": "furlong"}}`
	badValue := `{
		"categoryType": "HKCategoryTypeIdentifierSleepAnalysis",
		"value": 99,
		"startDate": "2024-03-01T00:00:00Z",
		"endDate": "2024-03-01T06:00:00Z",
		"sourceRevision": {"source": {"name": "Watch", "bundleIdentifier": "com.apple.health"}}
	}`
	res, err := p.Ingest(context.Background(), payload([]string{heartRate, badUnit}, []string{badValue}))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.RecordsRejected != 2 || res.RecordsInserted != 1 {
		t.Errorf("rejected/inserted = %d/%d, want 2/1", res.RecordsRejected, res.RecordsInserted)
	}
	if res.RejectedByKind["quantity"] != 1 || res.RejectedByKind["category"] != 1 {
		t.Errorf("RejectedByKind = %v", res.RejectedByKind)
	}
	if len(res.RejectedReasons) != 2 {
		t.Errorf("RejectedReasons = %v, want 2 entries", res.RejectedReasons)
	}
	if res.Message == "" {
		t.Error("expected rejection message")
	}
}

// TestIngestStoreError verifies storage failures abort the ingest.
func TestIngestStoreError(t *testing.T) {
	boom := errors.New("db down")
	p := NewProvider(&fakeStore{err: boom}, nil, nil, discard())
	_, err := p.Ingest(context.Background(), payload([]string{heartRate}, nil))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

// TestIngestPublishErrorKeepsResult verifies publish failures do not fail a
// stored batch.
func TestIngestPublishErrorKeepsResult(t *testing.T) {
	p := NewProvider(&fakeStore{}, &fakePublisher{err: errors.New("no broker")}, nil, discard())
	res, err := p.Ingest(context.Background(), payload([]string{heartRate}, nil))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.RecordsInserted != 1 || res.RecordsPublished != 0 {
		t.Errorf("inserted/published = %d/%d, want 1/0", res.RecordsInserted, res.RecordsPublished)
	}
}

// TestPayloadLen verifies Len counts across kinds.
func TestPayloadLen(t *testing.T) {
	var p Payload
	if err := json.Unmarshal([]byte(`{"data": {"quantitySamples": [{}, {}], "workouts": [{}]}}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len = %d, want 3", p.Len())
	}
}

// TestIngestJournals verifies successes and failures are both logged.
func TestIngestJournals(t *testing.T) {
	store := &fakeStore{}
	p := NewProvider(store, nil, nil, discard())
	if _, err := p.Ingest(context.Background(), payload([]string{heartRate}, nil)); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	store.err = errors.New("db down")
	if _, err := p.Ingest(context.Background(), payload([]string{heartRate}, nil)); err == nil {
		t.Fatal("Ingest succeeded, want error")
	}

	if len(store.logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(store.logs))
	}
	if got := store.logs[0]; got.Source != "payload" || got.Status != "success" || got.Inserted != 1 {
		t.Errorf("first log = %+v", got)
	}
	if got := store.logs[1]; got.Status != "error" || got.ErrorMessage == nil {
		t.Errorf("second log = %+v, want error status with message", got)
	}
}
