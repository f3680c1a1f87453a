package convert

import (
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/units"
)

// HarmonizeStatistics converts a statistics aggregate. At least one of sum,
// average, most recent, minimum or maximum must be present.
func HarmonizeStatistics(s *healthkit.Statistics) (*models.Statistics, error) {
	if s == nil {
		return nil, hkerror.InvalidValuef("statistics is absent")
	}
	qt, err := quantityType(s.Type.Identifier)
	if err != nil {
		return nil, err
	}
	owner := "statistics of " + qt.Identifier
	if s.StartDate.IsZero() {
		return nil, hkerror.Missing("startDate", owner)
	}
	if s.EndDate.IsZero() {
		return nil, hkerror.Missing("endDate", owner)
	}

	var h models.StatisticsHarmonized
	fields := []struct {
		name string
		q    *units.Quantity
		v    **float64
		u    *string
	}{
		{"summary", s.Sum, &h.Summary, &h.SummaryUnit},
		{"average", s.Average, &h.Average, &h.AverageUnit},
		{"recent", s.MostRecent, &h.Recent, &h.RecentUnit},
		{"min", s.Minimum, &h.Min, &h.MinUnit},
		{"max", s.Maximum, &h.Max, &h.MaxUnit},
	}
	present := 0
	for _, f := range fields {
		v, unit, err := encodeOptional(f.q, qt.PreferredUnit, f.name, owner)
		if err != nil {
			return nil, err
		}
		if v != nil {
			present++
		}
		*f.v, *f.u = v, unit
	}
	if present == 0 {
		return nil, hkerror.InvalidValuef("%s has no aggregate value", owner)
	}

	var sources []models.Source
	for _, src := range s.Sources {
		sources = append(sources, models.NewSource(src))
	}
	return &models.Statistics{
		Identifier: qt.Identifier,
		StartDate:  models.FormatTimestamp(s.StartDate),
		EndDate:    models.FormatTimestamp(s.EndDate),
		Sources:    sources,
		Harmonized: h,
	}, nil
}

// DehydrateStatistics rebuilds a native statistics aggregate.
func DehydrateStatistics(r *models.Statistics) (*healthkit.Statistics, error) {
	qt, err := quantityType(r.Identifier)
	if err != nil {
		return nil, err
	}
	owner := "statistics of " + qt.Identifier
	start, end, err := r.Span()
	if err != nil {
		return nil, err
	}
	out := &healthkit.Statistics{Type: qt, StartDate: start, EndDate: end}
	h := r.Harmonized
	fields := []struct {
		name string
		v    *float64
		u    string
		dst  **units.Quantity
	}{
		{"summary", h.Summary, h.SummaryUnit, &out.Sum},
		{"average", h.Average, h.AverageUnit, &out.Average},
		{"recent", h.Recent, h.RecentUnit, &out.MostRecent},
		{"min", h.Min, h.MinUnit, &out.Minimum},
		{"max", h.Max, h.MaxUnit, &out.Maximum},
	}
	present := 0
	for _, f := range fields {
		q, err := decodeAs(f.v, f.u, qt.PreferredUnit, f.name, owner)
		if err != nil {
			return nil, err
		}
		if q != nil {
			present++
		}
		*f.dst = q
	}
	if present == 0 {
		return nil, hkerror.InvalidValuef("%s has no aggregate value", owner)
	}
	for _, src := range r.Sources {
		out.Sources = append(out.Sources, src.Original())
	}
	return out, nil
}
