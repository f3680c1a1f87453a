package convert

import (
	"fmt"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/units"
)

const ecgOwner = "electrocardiogram"

// HarmonizeElectrocardiogram converts an ECG recording. Voltages are in
// microvolts, the sampling frequency in hertz and the heart rate in
// count/min.
func HarmonizeElectrocardiogram(e *healthkit.Electrocardiogram) (*models.Electrocardiogram, error) {
	if e == nil {
		return nil, hkerror.InvalidValuef("electrocardiogram is absent")
	}
	class, err := healthkit.ECGClassificationFromCode(int(e.Classification))
	if err != nil {
		return nil, err
	}
	symptoms, err := healthkit.ECGSymptomsStatusFromCode(int(e.SymptomsStatus))
	if err != nil {
		return nil, err
	}
	env, err := harmonizeSample(healthkit.ElectrocardiogramType.Identifier, e.Sample, ecgOwner)
	if err != nil {
		return nil, err
	}
	h := models.ElectrocardiogramHarmonized{
		Classification: int(class),
		SymptomsStatus: int(symptoms),
		Metadata:       models.NewMetadata(e.Metadata),
	}
	if h.AverageHeartRate, h.AverageHeartRateUnit, err = encodeOptional(e.AverageHeartRate, units.CountPerMinute, "averageHeartRate", ecgOwner); err != nil {
		return nil, err
	}
	if h.SamplingFrequency, h.SamplingFrequencyUnit, err = encodeOptional(e.SamplingFrequency, units.Hertz, "samplingFrequency", ecgOwner); err != nil {
		return nil, err
	}
	for i, m := range e.Voltages {
		v, unit, err := encodeRequired(m.Voltage, units.Microvolt, "voltage", fmt.Sprintf("%s measurement %d", ecgOwner, i))
		if err != nil {
			return nil, err
		}
		h.VoltageMeasurements = append(h.VoltageMeasurements, models.Voltage{
			TimeSinceSampleStart: m.TimeSinceSampleStart,
			Voltage:              v,
			VoltageUnit:          unit,
		})
	}
	return &models.Electrocardiogram{
		SampleEnvelope:       env,
		NumberOfMeasurements: e.NumberOfVoltageMeasurements,
		Harmonized:           h,
	}, nil
}

// DehydrateElectrocardiogram rebuilds a native ECG recording.
func DehydrateElectrocardiogram(r *models.Electrocardiogram) (*healthkit.Electrocardiogram, error) {
	if err := expectIdentifier(r.Identifier, healthkit.ElectrocardiogramType); err != nil {
		return nil, err
	}
	h := r.Harmonized
	class, err := healthkit.ECGClassificationFromCode(h.Classification)
	if err != nil {
		return nil, err
	}
	symptoms, err := healthkit.ECGSymptomsStatusFromCode(h.SymptomsStatus)
	if err != nil {
		return nil, err
	}
	sample, err := dehydrateSample(r.SampleEnvelope, h.Metadata)
	if err != nil {
		return nil, err
	}
	out := &healthkit.Electrocardiogram{
		NumberOfVoltageMeasurements: r.NumberOfMeasurements,
		Classification:              class,
		SymptomsStatus:              symptoms,
		Sample:                      sample,
	}
	if out.AverageHeartRate, err = decodeAs(h.AverageHeartRate, h.AverageHeartRateUnit, units.CountPerMinute, "averageHeartRate", ecgOwner); err != nil {
		return nil, err
	}
	if out.SamplingFrequency, err = decodeAs(h.SamplingFrequency, h.SamplingFrequencyUnit, units.Hertz, "samplingFrequency", ecgOwner); err != nil {
		return nil, err
	}
	for i, m := range h.VoltageMeasurements {
		owner := fmt.Sprintf("%s measurement %d", ecgOwner, i)
		q, err := decodeAs(m.Voltage, m.VoltageUnit, units.Microvolt, "voltage", owner)
		if err != nil {
			return nil, err
		}
		if q == nil {
			return nil, hkerror.Missing("voltage", owner)
		}
		out.Voltages = append(out.Voltages, healthkit.VoltageMeasurement{
			TimeSinceSampleStart: m.TimeSinceSampleStart,
			Voltage:              q,
		})
	}
	return out, nil
}
