// Package convert turns native health objects into portable records
// (harmonization) and portable records back into native objects
// (dehydration).
//
// Every conversion is a pure function of its input. Failures are typed
// hkerror values: InvalidValue for missing or unconvertible fields,
// InvalidType for identifiers, codes and unit strings that do not resolve.
package convert

import (
	"fmt"
	"time"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/units"
)

// encodeRequired expresses a required quantity in u.
func encodeRequired(q *units.Quantity, u units.Unit, field, owner string) (*float64, string, error) {
	if q == nil {
		return nil, "", hkerror.Missing(field, owner)
	}
	v, unit, err := units.Encode(q, u)
	if err != nil {
		return nil, "", fmt.Errorf("%s of %s: %w", field, owner, err)
	}
	return &v, unit, nil
}

// encodeOptional is encodeRequired for quantities the platform may omit.
func encodeOptional(q *units.Quantity, u units.Unit, field, owner string) (*float64, string, error) {
	if q == nil {
		return nil, "", nil
	}
	return encodeRequired(q, u, field, owner)
}

// decodePair rebuilds a quantity from its value and unit fields. Both absent
// yields nil; one half alone is an InvalidValue.
func decodePair(v *float64, unit, field, owner string) (*units.Quantity, error) {
	switch {
	case v == nil && unit == "":
		return nil, nil
	case v == nil:
		return nil, hkerror.InvalidValuef("%s of %s has %sUnit but no value", field, owner, field)
	case unit == "":
		return nil, hkerror.InvalidValuef("%s of %s has a value but no %sUnit", field, owner, field)
	}
	q, err := units.Decode(*v, unit)
	if err != nil {
		return nil, fmt.Errorf("%sUnit of %s: %w", field, owner, err)
	}
	return &q, nil
}

// decodeAs is decodePair for fields whose unit must match the dimension of want.
func decodeAs(v *float64, unit string, want units.Unit, field, owner string) (*units.Quantity, error) {
	q, err := decodePair(v, unit, field, owner)
	if err != nil || q == nil {
		return q, err
	}
	if !q.IsCompatible(want) {
		return nil, hkerror.InvalidValuef("%s of %s in %q cannot be expressed in %q", field, owner, unit, want)
	}
	return q, nil
}

// calendarDay returns midnight UTC of d. Components that time.Date would
// normalize into another day are rejected.
func calendarDay(d healthkit.DateComponents, field, owner string) (time.Time, error) {
	t := d.Date(time.UTC)
	if healthkit.DateComponentsOf(t) != d {
		return time.Time{}, hkerror.InvalidValuef("%s %04d-%02d-%02d of %s is not a calendar date",
			field, d.Year, d.Month, d.Day, owner)
	}
	return t, nil
}

// harmonizeSample builds the shared envelope of a sample-backed record.
func harmonizeSample(identifier string, s healthkit.Sample, owner string) (models.SampleEnvelope, error) {
	if s.StartDate.IsZero() {
		return models.SampleEnvelope{}, hkerror.Missing("startDate", owner)
	}
	if s.EndDate.IsZero() {
		return models.SampleEnvelope{}, hkerror.Missing("endDate", owner)
	}
	return models.SampleEnvelope{
		Identifier:     identifier,
		StartDate:      models.FormatTimestamp(s.StartDate),
		EndDate:        models.FormatTimestamp(s.EndDate),
		Device:         models.NewDevice(s.Device),
		SourceRevision: models.NewSourceRevision(s.SourceRevision),
	}, nil
}

// dehydrateSample rebuilds the shared native sample attributes.
func dehydrateSample(e models.SampleEnvelope, md models.Metadata) (healthkit.Sample, error) {
	start, end, err := e.Span()
	if err != nil {
		return healthkit.Sample{}, err
	}
	rev, err := e.SourceRevision.Original()
	if err != nil {
		return healthkit.Sample{}, err
	}
	return healthkit.Sample{
		StartDate:      start,
		EndDate:        end,
		Device:         e.Device.Original(),
		SourceRevision: rev,
		Metadata:       md.Original(),
	}, nil
}

// expectIdentifier checks a record identifier against a singleton type.
func expectIdentifier(id string, want healthkit.ObjectType) error {
	if id != want.Identifier {
		return hkerror.InvalidTypef("identifier %q is not %s", id, want.Identifier)
	}
	return nil
}

func quantityType(id string) (healthkit.QuantityType, error) {
	qt, ok := healthkit.QuantityTypeForIdentifier(id)
	if !ok {
		return healthkit.QuantityType{}, hkerror.InvalidTypef("quantity type identifier %q could not be resolved", id)
	}
	return qt, nil
}

func categoryType(id string) (healthkit.CategoryType, error) {
	ct, ok := healthkit.CategoryTypeForIdentifier(id)
	if !ok {
		return healthkit.CategoryType{}, hkerror.InvalidTypef("category type identifier %q could not be resolved", id)
	}
	return ct, nil
}

func correlationType(id string) (healthkit.CorrelationType, error) {
	ct, ok := healthkit.CorrelationTypeForIdentifier(id)
	if !ok {
		return healthkit.CorrelationType{}, hkerror.InvalidTypef("correlation type identifier %q could not be resolved", id)
	}
	return ct, nil
}
