package convert

import (
	"bytes"
	"encoding/json"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
)

// entry is the resolution table row for one kind: allocators for both
// forms and the harmonizer/dehydrator pair.
type entry struct {
	newObject func() healthkit.Object
	newRecord func() models.Record
	harmonize func(healthkit.Object) (models.Record, error)
	dehydrate func(models.Record) (healthkit.Object, error)
	isObject  func(healthkit.Object) bool
	isRecord  func(models.Record) bool
}

// newEntry builds a table row from a typed harmonizer/dehydrator pair.
func newEntry[O, R any, PO interface {
	*O
	healthkit.Object
}, PR interface {
	*R
	models.Record
}](h func(PO) (PR, error), d func(PR) (PO, error)) entry {
	return entry{
		newObject: func() healthkit.Object { return PO(new(O)) },
		newRecord: func() models.Record { return PR(new(R)) },
		harmonize: func(obj healthkit.Object) (models.Record, error) {
			r, err := h(obj.(PO))
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		dehydrate: func(rec models.Record) (healthkit.Object, error) {
			o, err := d(rec.(PR))
			if err != nil {
				return nil, err
			}
			return o, nil
		},
		isObject: func(obj healthkit.Object) bool { _, ok := obj.(PO); return ok },
		isRecord: func(rec models.Record) bool { _, ok := rec.(PR); return ok },
	}
}

var table = map[models.Kind]entry{
	models.KindQuantity:          newEntry(HarmonizeQuantity, DehydrateQuantity),
	models.KindCategory:          newEntry(HarmonizeCategory, DehydrateCategory),
	models.KindCorrelation:       newEntry(HarmonizeCorrelation, DehydrateCorrelation),
	models.KindStatistics:        newEntry(HarmonizeStatistics, DehydrateStatistics),
	models.KindActivitySummary:   newEntry(HarmonizeActivitySummary, DehydrateActivitySummary),
	models.KindWorkout:           newEntry(HarmonizeWorkout, DehydrateWorkout),
	models.KindWorkoutEvent:      newEntry(HarmonizeWorkoutEvent, DehydrateWorkoutEvent),
	models.KindElectrocardiogram: newEntry(HarmonizeElectrocardiogram, DehydrateElectrocardiogram),
	models.KindCharacteristics:   newEntry(HarmonizeCharacteristics, DehydrateCharacteristics),
	models.KindHeartbeatSeries:   newEntry(HarmonizeHeartbeatSeries, DehydrateHeartbeatSeries),
}

func lookup(kind models.Kind) (entry, error) {
	e, ok := table[kind]
	if !ok {
		return entry{}, hkerror.InvalidIdentifierf("unknown record kind %q", kind)
	}
	return e, nil
}

// KindOf returns the record kind of a native object.
func KindOf(obj healthkit.Object) (models.Kind, error) {
	for kind, e := range table {
		if e.isObject(obj) {
			return kind, nil
		}
	}
	return "", hkerror.InvalidIdentifierf("unsupported native object %T", obj)
}

func recordKind(rec models.Record) (models.Kind, error) {
	for kind, e := range table {
		if e.isRecord(rec) {
			return kind, nil
		}
	}
	return "", hkerror.InvalidIdentifierf("unsupported record %T", rec)
}

// Harmonize converts any native object to its portable record.
func Harmonize(obj healthkit.Object) (models.Record, error) {
	kind, err := KindOf(obj)
	if err != nil {
		return nil, err
	}
	return table[kind].harmonize(obj)
}

// Dehydrate converts any portable record back to its native object.
func Dehydrate(rec models.Record) (healthkit.Object, error) {
	kind, err := recordKind(rec)
	if err != nil {
		return nil, err
	}
	return table[kind].dehydrate(rec)
}

// DecodeRecord parses a portable record of the given kind.
func DecodeRecord(kind models.Kind, data []byte) (models.Record, error) {
	e, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	rec := e.newRecord()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, hkerror.InvalidValuef("decoding %s record: %v", kind, err)
	}
	return rec, nil
}

// DecodeObject parses a native object of the given kind from its JSON
// export form. Numeric metadata values keep their literal text.
func DecodeObject(kind models.Kind, data []byte) (healthkit.Object, error) {
	e, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	obj := e.newObject()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(obj); err != nil {
		if hkerror.KindOf(err) != 0 {
			return nil, err
		}
		return nil, hkerror.InvalidValuef("decoding native %s: %v", kind, err)
	}
	return obj, nil
}
