package convert

import (
	"fmt"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
)

// HarmonizeQuantity converts a quantity sample, expressing its value in the
// type's preferred unit.
func HarmonizeQuantity(s *healthkit.QuantitySample) (*models.Quantity, error) {
	if s == nil {
		return nil, hkerror.InvalidValuef("quantity sample is absent")
	}
	qt, err := quantityType(s.Type.Identifier)
	if err != nil {
		return nil, err
	}
	env, err := harmonizeSample(qt.Identifier, s.Sample, qt.Identifier)
	if err != nil {
		return nil, err
	}
	v, unit, err := encodeRequired(s.Quantity, qt.PreferredUnit, "quantity", qt.Identifier)
	if err != nil {
		return nil, err
	}
	return &models.Quantity{
		SampleEnvelope: env,
		Harmonized: models.QuantityHarmonized{
			Value:    v,
			Unit:     unit,
			Metadata: models.NewMetadata(s.Metadata),
		},
	}, nil
}

// DehydrateQuantity rebuilds a native quantity sample.
func DehydrateQuantity(r *models.Quantity) (*healthkit.QuantitySample, error) {
	qt, err := quantityType(r.Identifier)
	if err != nil {
		return nil, err
	}
	sample, err := dehydrateSample(r.SampleEnvelope, r.Harmonized.Metadata)
	if err != nil {
		return nil, err
	}
	q, err := decodeAs(r.Harmonized.Value, r.Harmonized.Unit, qt.PreferredUnit, "value", qt.Identifier)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, hkerror.Missing("value", qt.Identifier)
	}
	return &healthkit.QuantitySample{Type: qt, Quantity: q, Sample: sample}, nil
}

// HarmonizeCategory converts a category sample, keeping its raw value code.
func HarmonizeCategory(s *healthkit.CategorySample) (*models.Category, error) {
	if s == nil {
		return nil, hkerror.InvalidValuef("category sample is absent")
	}
	ct, err := categoryType(s.Type.Identifier)
	if err != nil {
		return nil, err
	}
	value, err := ct.ResolveValue(s.Value)
	if err != nil {
		return nil, err
	}
	env, err := harmonizeSample(ct.Identifier, s.Sample, ct.Identifier)
	if err != nil {
		return nil, err
	}
	return &models.Category{
		SampleEnvelope: env,
		Harmonized: models.CategoryHarmonized{
			Value:    value,
			Metadata: models.NewMetadata(s.Metadata),
		},
	}, nil
}

// DehydrateCategory rebuilds a native category sample.
func DehydrateCategory(r *models.Category) (*healthkit.CategorySample, error) {
	ct, err := categoryType(r.Identifier)
	if err != nil {
		return nil, err
	}
	value, err := ct.ResolveValue(r.Harmonized.Value)
	if err != nil {
		return nil, err
	}
	sample, err := dehydrateSample(r.SampleEnvelope, r.Harmonized.Metadata)
	if err != nil {
		return nil, err
	}
	return &healthkit.CategorySample{Type: ct, Value: value, Sample: sample}, nil
}

// HarmonizeCorrelation converts a correlation. A member sample that fails to
// convert fails the whole correlation.
func HarmonizeCorrelation(c *healthkit.Correlation) (*models.Correlation, error) {
	if c == nil {
		return nil, hkerror.InvalidValuef("correlation is absent")
	}
	ct, err := correlationType(c.Type.Identifier)
	if err != nil {
		return nil, err
	}
	env, err := harmonizeSample(ct.Identifier, c.Sample, ct.Identifier)
	if err != nil {
		return nil, err
	}
	h := models.CorrelationHarmonized{
		QuantityData: make([]models.Quantity, 0, len(c.QuantitySamples)),
		CategoryData: make([]models.Category, 0, len(c.CategorySamples)),
		Metadata:     models.NewMetadata(c.Metadata),
	}
	for i, s := range c.QuantitySamples {
		q, err := HarmonizeQuantity(s)
		if err != nil {
			return nil, fmt.Errorf("%s quantity sample %d: %w", ct.Identifier, i, err)
		}
		h.QuantityData = append(h.QuantityData, *q)
	}
	for i, s := range c.CategorySamples {
		cat, err := HarmonizeCategory(s)
		if err != nil {
			return nil, fmt.Errorf("%s category sample %d: %w", ct.Identifier, i, err)
		}
		h.CategoryData = append(h.CategoryData, *cat)
	}
	return &models.Correlation{SampleEnvelope: env, Harmonized: h}, nil
}

// DehydrateCorrelation rebuilds a native correlation and its members.
func DehydrateCorrelation(r *models.Correlation) (*healthkit.Correlation, error) {
	ct, err := correlationType(r.Identifier)
	if err != nil {
		return nil, err
	}
	sample, err := dehydrateSample(r.SampleEnvelope, r.Harmonized.Metadata)
	if err != nil {
		return nil, err
	}
	out := &healthkit.Correlation{Type: ct, Sample: sample}
	for i := range r.Harmonized.QuantityData {
		q, err := DehydrateQuantity(&r.Harmonized.QuantityData[i])
		if err != nil {
			return nil, fmt.Errorf("%s quantity sample %d: %w", ct.Identifier, i, err)
		}
		out.QuantitySamples = append(out.QuantitySamples, q)
	}
	for i := range r.Harmonized.CategoryData {
		c, err := DehydrateCategory(&r.Harmonized.CategoryData[i])
		if err != nil {
			return nil, fmt.Errorf("%s category sample %d: %w", ct.Identifier, i, err)
		}
		out.CategorySamples = append(out.CategorySamples, c)
	}
	return out, nil
}
