package convert

import (
	"fmt"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/units"
)

const (
	workoutOwner = "workout"
	eventOwner   = "workout event"
)

// HarmonizeWorkout converts a workout. totalEnergyBurned is required; the
// other totals are optional. Events that fail to harmonize are dropped from
// the record instead of failing the workout.
func HarmonizeWorkout(w *healthkit.Workout) (*models.Workout, error) {
	if w == nil {
		return nil, hkerror.InvalidValuef("workout is absent")
	}
	activity, err := healthkit.WorkoutActivityTypeFromCode(int(w.ActivityType))
	if err != nil {
		return nil, err
	}
	env, err := harmonizeSample(healthkit.WorkoutType.Identifier, w.Sample, workoutOwner)
	if err != nil {
		return nil, err
	}

	h := models.WorkoutHarmonized{
		Value:    int(activity),
		Metadata: models.NewMetadata(w.Metadata),
	}
	if h.TotalEnergyBurned, h.TotalEnergyBurnedUnit, err = encodeRequired(w.TotalEnergyBurned, units.LargeCalorie, "totalEnergyBurned", workoutOwner); err != nil {
		return nil, err
	}
	if h.TotalDistance, h.TotalDistanceUnit, err = encodeOptional(w.TotalDistance, units.Meter, "totalDistance", workoutOwner); err != nil {
		return nil, err
	}
	if h.TotalSwimmingStrokeCount, h.TotalSwimmingStrokeCountUnit, err = encodeOptional(w.TotalSwimmingStrokeCount, units.Count, "totalSwimmingStrokeCount", workoutOwner); err != nil {
		return nil, err
	}
	if h.TotalFlightsClimbed, h.TotalFlightsClimbedUnit, err = encodeOptional(w.TotalFlightsClimbed, units.Count, "totalFlightsClimbed", workoutOwner); err != nil {
		return nil, err
	}

	events := make([]models.WorkoutEvent, 0, len(w.Events))
	for _, e := range w.Events {
		he, err := HarmonizeWorkoutEvent(e)
		if err != nil {
			continue
		}
		events = append(events, *he)
	}

	return &models.Workout{
		SampleEnvelope: env,
		WorkoutName:    activity.String(),
		Duration:       w.Duration,
		WorkoutEvents:  events,
		Harmonized:     h,
	}, nil
}

// DehydrateWorkout rebuilds a native workout. Unlike harmonization, an event
// that fails to dehydrate fails the whole workout.
func DehydrateWorkout(r *models.Workout) (*healthkit.Workout, error) {
	if err := expectIdentifier(r.Identifier, healthkit.WorkoutType); err != nil {
		return nil, err
	}
	h := r.Harmonized
	activity, err := healthkit.WorkoutActivityTypeFromCode(h.Value)
	if err != nil {
		return nil, err
	}
	sample, err := dehydrateSample(r.SampleEnvelope, h.Metadata)
	if err != nil {
		return nil, err
	}
	out := &healthkit.Workout{ActivityType: activity, Duration: r.Duration, Sample: sample}
	if out.TotalEnergyBurned, err = decodeAs(h.TotalEnergyBurned, h.TotalEnergyBurnedUnit, units.LargeCalorie, "totalEnergyBurned", workoutOwner); err != nil {
		return nil, err
	}
	if out.TotalEnergyBurned == nil {
		return nil, hkerror.Missing("totalEnergyBurned", workoutOwner)
	}
	if out.TotalDistance, err = decodeAs(h.TotalDistance, h.TotalDistanceUnit, units.Meter, "totalDistance", workoutOwner); err != nil {
		return nil, err
	}
	if out.TotalSwimmingStrokeCount, err = decodeAs(h.TotalSwimmingStrokeCount, h.TotalSwimmingStrokeCountUnit, units.Count, "totalSwimmingStrokeCount", workoutOwner); err != nil {
		return nil, err
	}
	if out.TotalFlightsClimbed, err = decodeAs(h.TotalFlightsClimbed, h.TotalFlightsClimbedUnit, units.Count, "totalFlightsClimbed", workoutOwner); err != nil {
		return nil, err
	}
	for i := range r.WorkoutEvents {
		e, err := DehydrateWorkoutEvent(&r.WorkoutEvents[i])
		if err != nil {
			return nil, fmt.Errorf("workout event %d: %w", i, err)
		}
		out.Events = append(out.Events, e)
	}
	return out, nil
}

// HarmonizeWorkoutEvent converts a single workout event.
func HarmonizeWorkoutEvent(e *healthkit.WorkoutEvent) (*models.WorkoutEvent, error) {
	if e == nil {
		return nil, hkerror.InvalidValuef("workout event is absent")
	}
	typ, err := healthkit.WorkoutEventTypeFromCode(int(e.Type))
	if err != nil {
		return nil, err
	}
	if e.StartDate.IsZero() {
		return nil, hkerror.Missing("startDate", eventOwner)
	}
	if e.EndDate.IsZero() {
		return nil, hkerror.Missing("endDate", eventOwner)
	}
	return &models.WorkoutEvent{
		Identifier: healthkit.WorkoutEventObjectType.Identifier,
		Type:       typ.String(),
		StartDate:  models.FormatTimestamp(e.StartDate),
		EndDate:    models.FormatTimestamp(e.EndDate),
		Duration:   e.Duration(),
		Harmonized: models.WorkoutEventHarmonized{
			Value:    int(typ),
			Metadata: models.NewMetadata(e.Metadata),
		},
	}, nil
}

// DehydrateWorkoutEvent rebuilds a native workout event from its raw code.
func DehydrateWorkoutEvent(r *models.WorkoutEvent) (*healthkit.WorkoutEvent, error) {
	if err := expectIdentifier(r.Identifier, healthkit.WorkoutEventObjectType); err != nil {
		return nil, err
	}
	typ, err := healthkit.WorkoutEventTypeFromCode(r.Harmonized.Value)
	if err != nil {
		return nil, err
	}
	start, end, err := r.Span()
	if err != nil {
		return nil, err
	}
	return &healthkit.WorkoutEvent{
		Type:      typ,
		StartDate: start,
		EndDate:   end,
		Metadata:  r.Harmonized.Metadata.Original(),
	}, nil
}
