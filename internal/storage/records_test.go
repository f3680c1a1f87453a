package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/models"
)

// TestBuildRecordQueryNoFilter verifies an empty filter only applies the
// default limit.
func TestBuildRecordQueryNoFilter(t *testing.T) {
	q, args := buildRecordQuery(RecordFilter{})
	if strings.Contains(q, "WHERE") {
		t.Errorf("query has WHERE clause: %s", q)
	}
	if len(args) != 1 || args[0] != defaultLimit {
		t.Errorf("args = %v, want [%d]", args, defaultLimit)
	}
}

// TestBuildRecordQueryStrictWindow verifies strict windows require full
// containment and placeholders are numbered in order.
func TestBuildRecordQueryStrictWindow(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	q, args := buildRecordQuery(RecordFilter{
		Kind:       models.KindQuantity,
		Identifier: healthkit.HeartRate.Identifier,
		Window:     healthkit.SamplesBetween(start, end),
		Limit:      50,
	})
	want := "WHERE kind = $1 AND identifier = $2 AND start_time >= $3 AND end_time <= $4"
	if !strings.Contains(q, want) {
		t.Errorf("query = %s\nwant it to contain %s", q, want)
	}
	if !strings.HasSuffix(q, "LIMIT $5") {
		t.Errorf("query = %s, want LIMIT $5", q)
	}
	if len(args) != 5 || args[0] != "quantity" || args[4] != 50 {
		t.Errorf("args = %v", args)
	}
}

// TestBuildRecordQueryOverlapWindow verifies non-strict windows match any
// overlapping record.
func TestBuildRecordQueryOverlapWindow(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	q, _ := buildRecordQuery(RecordFilter{Window: healthkit.Window{Start: start}})
	if !strings.Contains(q, "WHERE end_time >= $1") {
		t.Errorf("query = %s", q)
	}
}

// TestBuildRecordQueryLimitCap verifies oversized limits are capped.
func TestBuildRecordQueryLimitCap(t *testing.T) {
	_, args := buildRecordQuery(RecordFilter{Limit: 1 << 20})
	if args[len(args)-1] != defaultLimit {
		t.Errorf("limit = %v, want %d", args[len(args)-1], defaultLimit)
	}
}
