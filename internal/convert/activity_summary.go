package convert

import (
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/units"
)

const summaryOwner = "activity summary"

// HarmonizeActivitySummary converts a daily activity summary. The date is the
// midnight UTC timestamp of the summary's day. Energy is in
// large calories, move and exercise time in minutes, stand hours in counts.
// Move time and its goal are optional; the other rings are required.
func HarmonizeActivitySummary(a *healthkit.ActivitySummary) (*models.ActivitySummary, error) {
	if a == nil {
		return nil, hkerror.InvalidValuef("activity summary is absent")
	}
	if a.Date.IsZero() {
		return nil, hkerror.Missing("dateComponents", summaryOwner)
	}
	day, err := calendarDay(a.Date, "dateComponents", summaryOwner)
	if err != nil {
		return nil, err
	}
	mode, err := healthkit.ActivityMoveModeFromCode(int(a.MoveMode))
	if err != nil {
		return nil, err
	}

	h := models.ActivitySummaryHarmonized{ActivityMoveMode: int(mode)}
	fields := []struct {
		name     string
		q        *units.Quantity
		unit     units.Unit
		required bool
		v        **float64
		u        *string
	}{
		{"activeEnergyBurned", a.ActiveEnergyBurned, units.LargeCalorie, true, &h.ActiveEnergyBurned, &h.ActiveEnergyBurnedUnit},
		{"activeEnergyBurnedGoal", a.ActiveEnergyBurnedGoal, units.LargeCalorie, true, &h.ActiveEnergyBurnedGoal, &h.ActiveEnergyBurnedGoalUnit},
		{"appleMoveTime", a.AppleMoveTime, units.Minute, false, &h.AppleMoveTime, &h.AppleMoveTimeUnit},
		{"appleMoveTimeGoal", a.AppleMoveTimeGoal, units.Minute, false, &h.AppleMoveTimeGoal, &h.AppleMoveTimeGoalUnit},
		{"appleExerciseTime", a.AppleExerciseTime, units.Minute, true, &h.AppleExerciseTime, &h.AppleExerciseTimeUnit},
		{"appleExerciseTimeGoal", a.AppleExerciseTimeGoal, units.Minute, true, &h.AppleExerciseTimeGoal, &h.AppleExerciseTimeGoalUnit},
		{"appleStandHours", a.AppleStandHours, units.Count, true, &h.AppleStandHours, &h.AppleStandHoursUnit},
		{"appleStandHoursGoal", a.AppleStandHoursGoal, units.Count, true, &h.AppleStandHoursGoal, &h.AppleStandHoursGoalUnit},
	}
	for _, f := range fields {
		encode := encodeOptional
		if f.required {
			encode = encodeRequired
		}
		v, unit, err := encode(f.q, f.unit, f.name, summaryOwner)
		if err != nil {
			return nil, err
		}
		*f.v, *f.u = v, unit
	}
	return &models.ActivitySummary{
		Identifier: healthkit.ActivitySummaryType.Identifier,
		Date:       models.FormatTimestamp(day),
		Harmonized: h,
	}, nil
}

// DehydrateActivitySummary rebuilds a native activity summary.
func DehydrateActivitySummary(r *models.ActivitySummary) (*healthkit.ActivitySummary, error) {
	if err := expectIdentifier(r.Identifier, healthkit.ActivitySummaryType); err != nil {
		return nil, err
	}
	day, err := models.ParseTimestamp(r.Date)
	if err != nil {
		return nil, err
	}
	h := r.Harmonized
	mode, err := healthkit.ActivityMoveModeFromCode(h.ActivityMoveMode)
	if err != nil {
		return nil, err
	}
	out := &healthkit.ActivitySummary{Date: healthkit.DateComponentsOf(day), MoveMode: mode}
	fields := []struct {
		name     string
		v        *float64
		u        string
		unit     units.Unit
		required bool
		dst      **units.Quantity
	}{
		{"activeEnergyBurned", h.ActiveEnergyBurned, h.ActiveEnergyBurnedUnit, units.LargeCalorie, true, &out.ActiveEnergyBurned},
		{"activeEnergyBurnedGoal", h.ActiveEnergyBurnedGoal, h.ActiveEnergyBurnedGoalUnit, units.LargeCalorie, true, &out.ActiveEnergyBurnedGoal},
		{"appleMoveTime", h.AppleMoveTime, h.AppleMoveTimeUnit, units.Minute, false, &out.AppleMoveTime},
		{"appleMoveTimeGoal", h.AppleMoveTimeGoal, h.AppleMoveTimeGoalUnit, units.Minute, false, &out.AppleMoveTimeGoal},
		{"appleExerciseTime", h.AppleExerciseTime, h.AppleExerciseTimeUnit, units.Minute, true, &out.AppleExerciseTime},
		{"appleExerciseTimeGoal", h.AppleExerciseTimeGoal, h.AppleExerciseTimeGoalUnit, units.Minute, true, &out.AppleExerciseTimeGoal},
		{"appleStandHours", h.AppleStandHours, h.AppleStandHoursUnit, units.Count, true, &out.AppleStandHours},
		{"appleStandHoursGoal", h.AppleStandHoursGoal, h.AppleStandHoursGoalUnit, units.Count, true, &out.AppleStandHoursGoal},
	}
	for _, f := range fields {
		q, err := decodeAs(f.v, f.u, f.unit, f.name, summaryOwner)
		if err != nil {
			return nil, err
		}
		if q == nil && f.required {
			return nil, hkerror.Missing(f.name, summaryOwner)
		}
		*f.dst = q
	}
	return out, nil
}
