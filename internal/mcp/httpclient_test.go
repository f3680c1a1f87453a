package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestQueryRecords verifies the HTTP client sends the filter as query params
// and parses the JSON array response.
func TestQueryRecords(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/records": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("kind"); got != "quantity" {
				t.Errorf("kind=%q, want quantity", got)
			}
			if got := q.Get("identifier"); got != "HKQuantityTypeIdentifierHeartRate" {
				t.Errorf("identifier=%q", got)
			}
			if got := q.Get("start"); got != "2026-01-01T00:00:00Z" {
				t.Errorf("start=%q", got)
			}
			if got := q.Get("strict"); got != "true" {
				t.Errorf("strict=%q, want true", got)
			}
			if got := q.Get("limit"); got != "10" {
				t.Errorf("limit=%q, want 10", got)
			}
			writeTestJSON(t, w, []models.RecordRow{
				{ID: id, Kind: models.KindQuantity, Identifier: "HKQuantityTypeIdentifierHeartRate", Payload: json.RawMessage(`{}`)},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := client.QueryRecords(context.Background(), storage.RecordFilter{
		Kind:       models.KindQuantity,
		Identifier: "HKQuantityTypeIdentifierHeartRate",
		Window:     healthkit.SamplesBetween(start, start.AddDate(0, 0, 7)),
		Limit:      10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != id {
		t.Errorf("rows = %+v, want one row with id %s", rows, id)
	}
}

// TestGetRecordNotFound verifies a 404 maps to storage.ErrNotFound.
func TestGetRecordNotFound(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/records/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).GetRecord(context.Background(), id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestCountByKind verifies counts are read from the stats endpoint.
func TestCountByKind(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, storage.DataStats{
				TotalRecords: 5,
				ByKind:       []storage.KindCount{{Kind: models.KindWorkout, Count: 5}},
			})
		},
	})
	defer ts.Close()

	counts, err := NewHTTPClient(ts.URL + "/").CountByKind(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 || counts[0].Kind != models.KindWorkout || counts[0].Count != 5 {
		t.Errorf("counts = %+v", counts)
	}
}

// TestServerError verifies non-200 responses surface as errors.
func TestServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).CountByKind(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}
