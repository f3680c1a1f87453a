package convert

import (
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
)

const heartbeatOwner = "heartbeat series"

// HarmonizeHeartbeatSeries converts a beat-to-beat series.
func HarmonizeHeartbeatSeries(s *healthkit.HeartbeatSeries) (*models.HeartbeatSeries, error) {
	if s == nil {
		return nil, hkerror.InvalidValuef("heartbeat series is absent")
	}
	env, err := harmonizeSample(healthkit.HeartbeatSeriesType.Identifier, s.Sample, heartbeatOwner)
	if err != nil {
		return nil, err
	}
	beats := make([]models.Heartbeat, len(s.Beats))
	for i, b := range s.Beats {
		beats[i] = models.Heartbeat{TimeSinceSeriesStart: b.TimeSinceSeriesStart, PrecededByGap: b.PrecededByGap}
	}
	return &models.HeartbeatSeries{
		SampleEnvelope: env,
		Harmonized: models.HeartbeatSeriesHarmonized{
			Count:    len(beats),
			Beats:    beats,
			Metadata: models.NewMetadata(s.Metadata),
		},
	}, nil
}

// DehydrateHeartbeatSeries rebuilds a native heartbeat series. The count
// must match the number of beats.
func DehydrateHeartbeatSeries(r *models.HeartbeatSeries) (*healthkit.HeartbeatSeries, error) {
	if err := expectIdentifier(r.Identifier, healthkit.HeartbeatSeriesType); err != nil {
		return nil, err
	}
	h := r.Harmonized
	if h.Count != len(h.Beats) {
		return nil, hkerror.InvalidValuef("%s count %d does not match %d beats", heartbeatOwner, h.Count, len(h.Beats))
	}
	sample, err := dehydrateSample(r.SampleEnvelope, h.Metadata)
	if err != nil {
		return nil, err
	}
	out := &healthkit.HeartbeatSeries{Sample: sample}
	for _, b := range h.Beats {
		out.Beats = append(out.Beats, healthkit.Heartbeat{TimeSinceSeriesStart: b.TimeSinceSeriesStart, PrecededByGap: b.PrecededByGap})
	}
	return out, nil
}
