package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/hkreporter/internal/ingest"
)

// TestSendPayloadRetries verifies server errors are retried until success.
func TestSendPayloadRetries(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/api/v1/ingest/" {
			t.Errorf("path = %s, want /api/v1/ingest/", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "key" {
			t.Errorf("X-API-Key = %q, want key", got)
		}
		if calls < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"records_received": 2, "records_inserted": 2}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL+"/", "key")
	c.backoff = time.Millisecond

	result, err := c.SendPayload(context.Background(), &ingest.Payload{})
	if err != nil {
		t.Fatalf("SendPayload: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if result.RecordsInserted != 2 {
		t.Errorf("inserted = %d, want 2", result.RecordsInserted)
	}
}

// TestSendPayloadClientError verifies 4xx responses are not retried.
func TestSendPayloadClientError(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "wrong")
	c.backoff = time.Millisecond

	if _, err := c.SendPayload(context.Background(), &ingest.Payload{}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// TestSendPayloadGivesUp verifies the attempt limit.
func TestSendPayloadGivesUp(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "key")
	c.backoff = time.Millisecond

	if _, err := c.SendPayload(context.Background(), &ingest.Payload{}); err == nil {
		t.Fatal("expected error")
	}
	if calls != maxAttempts {
		t.Errorf("calls = %d, want %d", calls, maxAttempts)
	}
}
