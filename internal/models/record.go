package models

import (
	"time"

	"github.com/claude/hkreporter/internal/hkerror"
)

// Kind names one member of the closed set of record kinds.
type Kind string

const (
	KindQuantity          Kind = "quantity"
	KindCategory          Kind = "category"
	KindCorrelation       Kind = "correlation"
	KindStatistics        Kind = "statistics"
	KindActivitySummary   Kind = "activitySummary"
	KindWorkout           Kind = "workout"
	KindWorkoutEvent      Kind = "workoutEvent"
	KindElectrocardiogram Kind = "electrocardiogram"
	KindCharacteristics   Kind = "characteristics"
	KindHeartbeatSeries   Kind = "heartbeatSeries"
)

var kinds = []Kind{
	KindQuantity, KindCategory, KindCorrelation, KindStatistics,
	KindActivitySummary, KindWorkout, KindWorkoutEvent,
	KindElectrocardiogram, KindCharacteristics, KindHeartbeatSeries,
}

// Kinds returns every record kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind resolves a kind name. Unknown names fail with InvalidIdentifier.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", hkerror.InvalidIdentifierf("unknown record kind %q", s)
}

// Record is a portable health record of any kind.
type Record interface {
	RecordKind() Kind
	// TypeIdentifier is the native type identifier carried in "identifier".
	TypeIdentifier() string
	// Span returns the record's time span. Records without dates return
	// zero times; daily summaries span their calendar day.
	Span() (start, end time.Time, err error)
}

// SampleEnvelope holds the fields shared by every sample-backed record.
type SampleEnvelope struct {
	Identifier     string         `json:"identifier"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	Device         *Device        `json:"device,omitempty"`
	SourceRevision SourceRevision `json:"sourceRevision"`
}

func (e SampleEnvelope) TypeIdentifier() string { return e.Identifier }

func (e SampleEnvelope) Span() (time.Time, time.Time, error) {
	return parseInterval(e.StartDate, e.EndDate)
}
