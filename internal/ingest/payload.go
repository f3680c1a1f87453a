package ingest

import (
	"encoding/json"

	"github.com/claude/hkreporter/internal/models"
)

// Payload is a batch of native objects in their JSON export form, grouped
// by kind. Items stay raw so one malformed object does not reject the batch.
type Payload struct {
	Data PayloadData `json:"data"`
}

// PayloadData holds the per-kind object lists of a Payload.
type PayloadData struct {
	QuantitySamples    []json.RawMessage `json:"quantitySamples,omitempty"`
	CategorySamples    []json.RawMessage `json:"categorySamples,omitempty"`
	Correlations       []json.RawMessage `json:"correlations,omitempty"`
	Statistics         []json.RawMessage `json:"statistics,omitempty"`
	ActivitySummaries  []json.RawMessage `json:"activitySummaries,omitempty"`
	Workouts           []json.RawMessage `json:"workouts,omitempty"`
	WorkoutEvents      []json.RawMessage `json:"workoutEvents,omitempty"`
	Electrocardiograms []json.RawMessage `json:"electrocardiograms,omitempty"`
	HeartbeatSeries    []json.RawMessage `json:"heartbeatSeries,omitempty"`
	Characteristics    []json.RawMessage `json:"characteristics,omitempty"`
}

// Batch is the objects of one kind.
type Batch struct {
	Kind  models.Kind
	Items []json.RawMessage
}

// Batches returns the non-empty kind groups in a fixed order.
func (d PayloadData) Batches() []Batch {
	all := []Batch{
		{models.KindQuantity, d.QuantitySamples},
		{models.KindCategory, d.CategorySamples},
		{models.KindCorrelation, d.Correlations},
		{models.KindStatistics, d.Statistics},
		{models.KindActivitySummary, d.ActivitySummaries},
		{models.KindWorkout, d.Workouts},
		{models.KindWorkoutEvent, d.WorkoutEvents},
		{models.KindElectrocardiogram, d.Electrocardiograms},
		{models.KindHeartbeatSeries, d.HeartbeatSeries},
		{models.KindCharacteristics, d.Characteristics},
	}
	out := all[:0]
	for _, b := range all {
		if len(b.Items) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of objects in the payload.
func (p *Payload) Len() int {
	n := 0
	for _, b := range p.Data.Batches() {
		n += len(b.Items)
	}
	return n
}
