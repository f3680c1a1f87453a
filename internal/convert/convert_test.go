package convert

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/units"
)

var (
	berlin = time.FixedZone("", 2*3600)
	start  = time.Date(2024, 6, 1, 7, 30, 0, 0, berlin)
	end    = start.Add(45 * time.Minute)
)

// nativeOpts compares native objects: quantities within 1e-9 relative
// tolerance, types by identifier.
var nativeOpts = cmp.Options{
	cmp.Comparer(func(a, b units.Quantity) bool { return a.Equal(b, 1e-9) }),
	cmp.Comparer(func(a, b units.Unit) bool { return a == b }),
	cmp.Comparer(func(a, b healthkit.CategoryType) bool { return a.Identifier == b.Identifier }),
	cmpopts.EquateEmpty(),
}

func sample(md healthkit.Metadata) healthkit.Sample {
	return healthkit.Sample{
		StartDate: start,
		EndDate:   end,
		Device: &healthkit.Device{
			Name:         healthkit.Ptr("Apple Watch"),
			Manufacturer: healthkit.Ptr("Apple Inc."),
			Model:        healthkit.Ptr("Watch"),
		},
		SourceRevision: healthkit.SourceRevision{
			Source:                 healthkit.Source{Name: "Watch", BundleIdentifier: "com.apple.health.84F3"},
			Version:                healthkit.Ptr("10.5"),
			ProductType:            healthkit.Ptr("Watch6,2"),
			OperatingSystemVersion: healthkit.OperatingSystemVersion{Major: 10, Minor: 5, Patch: 0},
		},
		Metadata: md,
	}
}

func heartRate(bpm float64) *healthkit.QuantitySample {
	return &healthkit.QuantitySample{
		Type:     healthkit.HeartRate,
		Quantity: units.New(bpm, units.CountPerMinute),
		Sample:   sample(healthkit.Metadata{"HKMetadataKeyHeartRateMotionContext": "1"}),
	}
}

func event(code healthkit.WorkoutEventType, offset time.Duration) *healthkit.WorkoutEvent {
	return &healthkit.WorkoutEvent{
		Type:      code,
		StartDate: start.Add(offset),
		EndDate:   start.Add(offset + time.Minute),
	}
}

func workout() *healthkit.Workout {
	return &healthkit.Workout{
		ActivityType:        healthkit.WorkoutRunning,
		Duration:            2700,
		TotalEnergyBurned:   units.New(412.5, units.LargeCalorie),
		TotalDistance:       units.New(7340, units.Meter),
		TotalFlightsClimbed: units.New(3, units.Count),
		Events: []*healthkit.WorkoutEvent{
			event(healthkit.WorkoutEventPause, 10*time.Minute),
			event(healthkit.WorkoutEventResume, 12*time.Minute),
			event(healthkit.WorkoutEventLap, 20*time.Minute),
		},
		Sample: sample(healthkit.Metadata{"HKIndoorWorkout": "false"}),
	}
}

// natives returns one valid native object of every kind.
func natives() map[models.Kind]healthkit.Object {
	return map[models.Kind]healthkit.Object{
		models.KindQuantity: heartRate(64),
		models.KindCategory: &healthkit.CategorySample{
			Type:   healthkit.SleepAnalysis,
			Value:  4,
			Sample: sample(nil),
		},
		models.KindCorrelation: &healthkit.Correlation{
			Type: healthkit.BloodPressure,
			QuantitySamples: []*healthkit.QuantitySample{
				{Type: healthkit.BloodPressureSystolic, Quantity: units.New(121, units.MillimeterOfMercury), Sample: sample(nil)},
				{Type: healthkit.BloodPressureDiastolic, Quantity: units.New(79, units.MillimeterOfMercury), Sample: sample(nil)},
			},
			Sample: sample(nil),
		},
		models.KindStatistics: &healthkit.Statistics{
			Type:      healthkit.HeartRate,
			StartDate: start,
			EndDate:   end,
			Sources:   []healthkit.Source{{Name: "Watch", BundleIdentifier: "com.apple.health.84F3"}},
			Average:   units.New(71.2, units.CountPerMinute),
			Minimum:   units.New(52, units.CountPerMinute),
			Maximum:   units.New(148, units.CountPerMinute),
		},
		models.KindActivitySummary: &healthkit.ActivitySummary{
			Date:                   healthkit.DateComponents{Year: 2024, Month: 6, Day: 1},
			MoveMode:               healthkit.MoveModeActiveEnergy,
			ActiveEnergyBurned:     units.New(512, units.LargeCalorie),
			ActiveEnergyBurnedGoal: units.New(600, units.LargeCalorie),
			AppleExerciseTime:      units.New(42, units.Minute),
			AppleExerciseTimeGoal:  units.New(30, units.Minute),
			AppleStandHours:        units.New(10, units.Count),
			AppleStandHoursGoal:    units.New(12, units.Count),
		},
		models.KindWorkout:      workout(),
		models.KindWorkoutEvent: event(healthkit.WorkoutEventSegment, 5*time.Minute),
		models.KindElectrocardiogram: &healthkit.Electrocardiogram{
			NumberOfVoltageMeasurements: 2,
			SamplingFrequency:           units.New(512, units.Hertz),
			AverageHeartRate:            units.New(68, units.CountPerMinute),
			Classification:              healthkit.ECGSinusRhythm,
			SymptomsStatus:              healthkit.SymptomsNone,
			Voltages: []healthkit.VoltageMeasurement{
				{TimeSinceSampleStart: 0, Voltage: units.New(-12.5, units.Microvolt)},
				{TimeSinceSampleStart: 1.0 / 512, Voltage: units.New(33.25, units.Microvolt)},
			},
			Sample: sample(nil),
		},
		models.KindCharacteristics: &healthkit.Characteristics{
			BiologicalSex: healthkit.SexFemale,
			BloodType:     healthkit.BloodTypeOPositive,
			SkinType:      healthkit.FitzpatrickSkinType(3),
			WheelchairUse: healthkit.WheelchairNo,
			DateOfBirth:   &healthkit.DateComponents{Year: 1988, Month: 11, Day: 23},
		},
		models.KindHeartbeatSeries: &healthkit.HeartbeatSeries{
			Beats: []healthkit.Heartbeat{
				{TimeSinceSeriesStart: 0.81},
				{TimeSinceSeriesStart: 1.62},
				{TimeSinceSeriesStart: 4.1, PrecededByGap: true},
			},
			Sample: sample(nil),
		},
	}
}

// TestRoundTripEveryKind verifies dehydrate(harmonize(x)) reproduces x for
// every kind, including through a JSON encoding of the record.
func TestRoundTripEveryKind(t *testing.T) {
	for kind, native := range natives() {
		t.Run(string(kind), func(t *testing.T) {
			rec, err := Harmonize(native)
			if err != nil {
				t.Fatalf("Harmonize: %v", err)
			}
			if rec.RecordKind() != kind {
				t.Errorf("RecordKind() = %q, want %q", rec.RecordKind(), kind)
			}
			if _, err := healthkit.ObjectTypeForIdentifier(rec.TypeIdentifier()); err != nil {
				t.Errorf("identifier %q does not resolve: %v", rec.TypeIdentifier(), err)
			}

			data, err := json.Marshal(rec)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			decoded, err := DecodeRecord(kind, data)
			if err != nil {
				t.Fatalf("DecodeRecord: %v", err)
			}

			back, err := Dehydrate(decoded)
			if err != nil {
				t.Fatalf("Dehydrate: %v", err)
			}
			if diff := cmp.Diff(native, back, nativeOpts); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestHarmonizeWorkoutShape pins the portable keys of a workout record.
func TestHarmonizeWorkoutShape(t *testing.T) {
	rec, err := HarmonizeWorkout(workout())
	if err != nil {
		t.Fatalf("HarmonizeWorkout: %v", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m["identifier"] != "HKWorkoutTypeIdentifier" {
		t.Errorf("identifier = %v", m["identifier"])
	}
	if m["startDate"] != "2024-06-01T07:30:00+02:00" {
		t.Errorf("startDate = %v", m["startDate"])
	}
	if m["workoutName"] != "running" {
		t.Errorf("workoutName = %v", m["workoutName"])
	}
	h := m["harmonized"].(map[string]any)
	want := map[string]any{
		"value":                   float64(37),
		"totalEnergyBurned":       412.5,
		"totalEnergyBurnedUnit":   "Cal",
		"totalDistance":           float64(7340),
		"totalDistanceUnit":       "m",
		"totalFlightsClimbed":     float64(3),
		"totalFlightsClimbedUnit": "count",
		"metadata":                map[string]any{"HKIndoorWorkout": "false"},
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("harmonized mismatch (-want +got):\n%s", diff)
	}
}

// TestHarmonizeWorkoutMissingEnergy verifies the required total energy is
// reported by name.
func TestHarmonizeWorkoutMissingEnergy(t *testing.T) {
	w := workout()
	w.TotalEnergyBurned = nil
	_, err := HarmonizeWorkout(w)
	if !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Fatalf("err = %v, want InvalidValue", err)
	}
	if !strings.Contains(err.Error(), "totalEnergyBurned") {
		t.Errorf("error %q does not name totalEnergyBurned", err)
	}
}

// TestHarmonizeWorkoutOptionalTotals verifies optional totals are omitted as
// whole pairs.
func TestHarmonizeWorkoutOptionalTotals(t *testing.T) {
	w := workout()
	w.TotalDistance = nil
	rec, err := HarmonizeWorkout(w)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Harmonized.TotalDistance != nil || rec.Harmonized.TotalDistanceUnit != "" {
		t.Errorf("totalDistance pair = %v %q, want both absent", rec.Harmonized.TotalDistance, rec.Harmonized.TotalDistanceUnit)
	}
	if rec.Harmonized.TotalSwimmingStrokeCount != nil {
		t.Error("totalSwimmingStrokeCount should be absent")
	}
}

// TestWorkoutEventDropAndFail verifies the asymmetric event policy: an
// unrecognized event is dropped when harmonizing but fails dehydration.
func TestWorkoutEventDropAndFail(t *testing.T) {
	w := workout()
	w.Events[1].Type = healthkit.WorkoutEventType(42)

	rec, err := HarmonizeWorkout(w)
	if err != nil {
		t.Fatalf("HarmonizeWorkout: %v", err)
	}
	if len(rec.WorkoutEvents) != 2 {
		t.Fatalf("len(workoutEvents) = %d, want 2", len(rec.WorkoutEvents))
	}
	if rec.WorkoutEvents[0].Type != "pause" || rec.WorkoutEvents[1].Type != "lap" {
		t.Errorf("kept events = %q, %q; want pause, lap", rec.WorkoutEvents[0].Type, rec.WorkoutEvents[1].Type)
	}

	rec.WorkoutEvents[1].Harmonized.Value = 42
	if _, err := DehydrateWorkout(rec); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("DehydrateWorkout err = %v, want InvalidType", err)
	}
}

// TestDehydrateUnknownIdentifier verifies identifiers outside the closed
// table are InvalidType.
func TestDehydrateUnknownIdentifier(t *testing.T) {
	q, err := HarmonizeQuantity(heartRate(60))
	if err != nil {
		t.Fatal(err)
	}
	q.Identifier = "HKUnknownType"
	if _, err := Dehydrate(q); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("quantity err = %v, want InvalidType", err)
	}

	w, err := HarmonizeWorkout(workout())
	if err != nil {
		t.Fatal(err)
	}
	w.Identifier = "HKUnknownType"
	if _, err := Dehydrate(w); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("workout err = %v, want InvalidType", err)
	}

	// A category identifier is not a quantity type.
	q.Identifier = healthkit.SleepAnalysis.Identifier
	if _, err := Dehydrate(q); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("wrong family err = %v, want InvalidType", err)
	}
}

// TestDehydrateBadTimestamp verifies unparseable dates are InvalidValue.
func TestDehydrateBadTimestamp(t *testing.T) {
	q, err := HarmonizeQuantity(heartRate(60))
	if err != nil {
		t.Fatal(err)
	}
	q.StartDate = "2024-06-01 07:30:00"
	if _, err := DehydrateQuantity(q); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("err = %v, want InvalidValue", err)
	}
}

// TestDehydrateSplitPair verifies that a quantity without its unit, or the
// reverse, is rejected.
func TestDehydrateSplitPair(t *testing.T) {
	w, err := HarmonizeWorkout(workout())
	if err != nil {
		t.Fatal(err)
	}
	w.Harmonized.TotalDistanceUnit = ""
	if _, err := DehydrateWorkout(w); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("value without unit err = %v, want InvalidValue", err)
	}

	w, _ = HarmonizeWorkout(workout())
	w.Harmonized.TotalDistance = nil
	if _, err := DehydrateWorkout(w); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("unit without value err = %v, want InvalidValue", err)
	}

	w, _ = HarmonizeWorkout(workout())
	w.Harmonized.TotalDistanceUnit = "parsec"
	if _, err := DehydrateWorkout(w); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("unknown unit err = %v, want InvalidType", err)
	}

	w, _ = HarmonizeWorkout(workout())
	w.Harmonized.TotalDistanceUnit = "kg"
	if _, err := DehydrateWorkout(w); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("incompatible unit err = %v, want InvalidValue", err)
	}
}

// TestHarmonizeConvertsUnits verifies fixed field units and the 1e-9 decode
// tolerance when the native quantity used another unit.
func TestHarmonizeConvertsUnits(t *testing.T) {
	w := workout()
	w.TotalEnergyBurned = units.New(1725.9, units.Kilojoule)
	w.TotalDistance = units.New(4.56, units.Mile)
	rec, err := HarmonizeWorkout(w)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Harmonized.TotalEnergyBurnedUnit != "Cal" || rec.Harmonized.TotalDistanceUnit != "m" {
		t.Errorf("units = %q, %q", rec.Harmonized.TotalEnergyBurnedUnit, rec.Harmonized.TotalDistanceUnit)
	}
	energy, err := units.Decode(*rec.Harmonized.TotalEnergyBurned, rec.Harmonized.TotalEnergyBurnedUnit)
	if err != nil {
		t.Fatal(err)
	}
	if !energy.Equal(*w.TotalEnergyBurned, 1e-9) {
		t.Errorf("energy %s != %s", energy, w.TotalEnergyBurned)
	}
	back, err := DehydrateWorkout(rec)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(w, back, nativeOpts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestHarmonizeIncompatibleQuantity verifies a quantity of the wrong
// dimension is an InvalidValue.
func TestHarmonizeIncompatibleQuantity(t *testing.T) {
	s := heartRate(60)
	s.Quantity = units.New(60, units.Minute)
	if _, err := HarmonizeQuantity(s); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("err = %v, want InvalidValue", err)
	}
}

// TestMetadataRoundTripIsLossy pins the string rendering of non-string
// metadata through a full conversion.
func TestMetadataRoundTripIsLossy(t *testing.T) {
	s := heartRate(60)
	s.Metadata = healthkit.Metadata{"foo": 42}
	rec, err := HarmonizeQuantity(s)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(models.Metadata{"foo": "42"}, rec.Harmonized.Metadata); diff != "" {
		t.Errorf("harmonized metadata (-want +got):\n%s", diff)
	}
	back, err := DehydrateQuantity(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.Metadata["foo"]; got != "42" {
		t.Errorf("dehydrated foo = %#v, want string \"42\"", got)
	}
}

// TestHarmonizeCategoryValue verifies category codes are validated.
func TestHarmonizeCategoryValue(t *testing.T) {
	c := &healthkit.CategorySample{Type: healthkit.SleepAnalysis, Value: 17, Sample: sample(nil)}
	if _, err := HarmonizeCategory(c); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("err = %v, want InvalidType", err)
	}
}

// TestHarmonizeMissingRequired covers required fields of the other kinds.
func TestHarmonizeMissingRequired(t *testing.T) {
	n := natives()

	q := n[models.KindQuantity].(*healthkit.QuantitySample)
	q.Quantity = nil
	if _, err := HarmonizeQuantity(q); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("quantity err = %v, want InvalidValue", err)
	}

	st := n[models.KindStatistics].(*healthkit.Statistics)
	st.Average, st.Minimum, st.Maximum = nil, nil, nil
	if _, err := HarmonizeStatistics(st); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("statistics err = %v, want InvalidValue", err)
	}

	a := n[models.KindActivitySummary].(*healthkit.ActivitySummary)
	a.AppleStandHoursGoal = nil
	_, err := HarmonizeActivitySummary(a)
	if !errors.Is(err, hkerror.ErrInvalidValue) || !strings.Contains(err.Error(), "appleStandHoursGoal") {
		t.Errorf("activity summary err = %v, want InvalidValue naming appleStandHoursGoal", err)
	}

	e := n[models.KindElectrocardiogram].(*healthkit.Electrocardiogram)
	e.StartDate = time.Time{}
	if _, err := HarmonizeElectrocardiogram(e); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("electrocardiogram err = %v, want InvalidValue", err)
	}
}

// TestCorrelationFailsFast verifies a bad member fails the correlation.
func TestCorrelationFailsFast(t *testing.T) {
	c := natives()[models.KindCorrelation].(*healthkit.Correlation)
	c.QuantitySamples[1].Quantity = nil
	if _, err := HarmonizeCorrelation(c); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("err = %v, want InvalidValue", err)
	}
}

// TestDehydrateHeartbeatCount verifies count and beats must agree.
func TestDehydrateHeartbeatCount(t *testing.T) {
	rec, err := HarmonizeHeartbeatSeries(natives()[models.KindHeartbeatSeries].(*healthkit.HeartbeatSeries))
	if err != nil {
		t.Fatal(err)
	}
	rec.Harmonized.Count = 7
	if _, err := DehydrateHeartbeatSeries(rec); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("err = %v, want InvalidValue", err)
	}
}

// TestDehydrateCharacteristicsCode verifies enumeration codes are validated.
func TestDehydrateCharacteristicsCode(t *testing.T) {
	rec, err := HarmonizeCharacteristics(natives()[models.KindCharacteristics].(*healthkit.Characteristics))
	if err != nil {
		t.Fatal(err)
	}
	if *rec.Harmonized.Birthday != "1988-11-23" {
		t.Errorf("birthday = %q", *rec.Harmonized.Birthday)
	}
	rec.Harmonized.BloodType = 12
	if _, err := DehydrateCharacteristics(rec); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("err = %v, want InvalidType", err)
	}
}

// TestDecodeRecordUnknownKind verifies the kind table is closed.
func TestDecodeRecordUnknownKind(t *testing.T) {
	if _, err := DecodeRecord("sleep", []byte(`{}`)); !errors.Is(err, hkerror.ErrInvalidIdentifier) {
		t.Errorf("err = %v, want InvalidIdentifier", err)
	}
	if _, err := DecodeRecord(models.KindWorkout, []byte(`{`)); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("malformed err = %v, want InvalidValue", err)
	}
}

// TestDecodeObjectNative verifies native JSON export decoding.
func TestDecodeObjectNative(t *testing.T) {
	raw := `{"quantityType":"HKQuantityTypeIdentifierStepCount","quantity":{"value":1200,"unit":"count"},
		"startDate":"2024-06-01T07:00:00Z","endDate":"2024-06-01T08:00:00Z",
		"sourceRevision":{"source":{"name":"iPhone","bundleIdentifier":"com.apple.health"},"operatingSystemVersion":{"majorVersion":17,"minorVersion":5,"patchVersion":1}}}`
	obj, err := DecodeObject(models.KindQuantity, []byte(raw))
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	rec, err := Harmonize(obj)
	if err != nil {
		t.Fatalf("Harmonize: %v", err)
	}
	q := rec.(*models.Quantity)
	if *q.Harmonized.Value != 1200 || q.Harmonized.Unit != "count" {
		t.Errorf("harmonized = %v %q", *q.Harmonized.Value, q.Harmonized.Unit)
	}
	if q.SourceRevision.SystemVersion != "17.5.1" {
		t.Errorf("systemVersion = %q", q.SourceRevision.SystemVersion)
	}

	if _, err := DecodeObject(models.KindQuantity, []byte(`{"quantityType":"HKUnknownType"}`)); !errors.Is(err, hkerror.ErrInvalidType) {
		t.Errorf("unknown type err = %v, want InvalidType", err)
	}
}

// TestKindOf verifies native objects map to their record kind.
func TestKindOf(t *testing.T) {
	for kind, obj := range natives() {
		got, err := KindOf(obj)
		if err != nil || got != kind {
			t.Errorf("KindOf(%T) = %q, %v; want %q", obj, got, err, kind)
		}
	}
}

// TestDecodeObjectNumericMetadata verifies numbers in native metadata render
// as written, without exponent notation.
func TestDecodeObjectNumericMetadata(t *testing.T) {
	raw := `{"quantityType":"HKQuantityTypeIdentifierHeartRate","quantity":{"value":60,"unit":"count/min"},
		"startDate":"2024-06-01T07:00:00Z","endDate":"2024-06-01T07:00:00Z",
		"metadata":{"HKExternalUUID":1717225800,"small":42,"ratio":0.25},
		"sourceRevision":{"source":{"name":"Watch","bundleIdentifier":"com.apple.health"},"operatingSystemVersion":{"majorVersion":10,"minorVersion":5,"patchVersion":0}}}`
	obj, err := DecodeObject(models.KindQuantity, []byte(raw))
	if err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	rec, err := Harmonize(obj)
	if err != nil {
		t.Fatalf("Harmonize: %v", err)
	}
	want := models.Metadata{"HKExternalUUID": "1717225800", "small": "42", "ratio": "0.25"}
	if diff := cmp.Diff(want, rec.(*models.Quantity).Harmonized.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

// TestRoundTripEmptyBundleIdentifier verifies a source without a bundle
// identifier survives harmonization and dehydration unchanged.
func TestRoundTripEmptyBundleIdentifier(t *testing.T) {
	q := heartRate(60)
	q.SourceRevision.Source.BundleIdentifier = ""
	st := natives()[models.KindStatistics].(*healthkit.Statistics)
	st.Sources[0].BundleIdentifier = ""

	for _, native := range []healthkit.Object{q, st} {
		rec, err := Harmonize(native)
		if err != nil {
			t.Fatalf("Harmonize(%T): %v", native, err)
		}
		back, err := Dehydrate(rec)
		if err != nil {
			t.Fatalf("Dehydrate(%T): %v", native, err)
		}
		if diff := cmp.Diff(native, back, nativeOpts); diff != "" {
			t.Errorf("%T round trip mismatch (-want +got):\n%s", native, diff)
		}
	}
}

// TestHarmonizeInvalidCalendarDate verifies day components that do not form
// a calendar date are rejected instead of rolled into the next month.
func TestHarmonizeInvalidCalendarDate(t *testing.T) {
	n := natives()
	a := n[models.KindActivitySummary].(*healthkit.ActivitySummary)
	a.Date = healthkit.DateComponents{Year: 2024, Month: 2, Day: 31}
	if _, err := HarmonizeActivitySummary(a); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("activity summary err = %v, want InvalidValue", err)
	}

	c := n[models.KindCharacteristics].(*healthkit.Characteristics)
	c.DateOfBirth = &healthkit.DateComponents{Year: 1988, Month: 13, Day: 1}
	if _, err := HarmonizeCharacteristics(c); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("characteristics err = %v, want InvalidValue", err)
	}

	a.Date = healthkit.DateComponents{Year: 2024, Month: 2, Day: 29}
	if _, err := HarmonizeActivitySummary(a); err != nil {
		t.Errorf("leap day err = %v, want nil", err)
	}
}

// TestActivitySummaryDateShape verifies the summary date uses the full
// timestamp layout and the birthday the date-only layout.
func TestActivitySummaryDateShape(t *testing.T) {
	n := natives()
	a, err := HarmonizeActivitySummary(n[models.KindActivitySummary].(*healthkit.ActivitySummary))
	if err != nil {
		t.Fatal(err)
	}
	if a.Date != "2024-06-01T00:00:00Z" {
		t.Errorf("date = %q, want 2024-06-01T00:00:00Z", a.Date)
	}

	a.Date = "2024-06-01"
	if _, err := DehydrateActivitySummary(a); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("date-only err = %v, want InvalidValue", err)
	}

	a.Date = "2024-06-01T00:00:00+02:00"
	back, err := DehydrateActivitySummary(a)
	if err != nil {
		t.Fatal(err)
	}
	if back.Date != (healthkit.DateComponents{Year: 2024, Month: 6, Day: 1}) {
		t.Errorf("dateComponents = %+v, want 2024-06-01", back.Date)
	}
}

// TestDehydrateWorkoutEnergyUnit verifies total energy must be present and
// expressed as an energy.
func TestDehydrateWorkoutEnergyUnit(t *testing.T) {
	w, err := HarmonizeWorkout(workout())
	if err != nil {
		t.Fatal(err)
	}
	w.Harmonized.TotalEnergyBurnedUnit = "m"
	if _, err := DehydrateWorkout(w); !errors.Is(err, hkerror.ErrInvalidValue) {
		t.Errorf("distance unit err = %v, want InvalidValue", err)
	}

	w, _ = HarmonizeWorkout(workout())
	w.Harmonized.TotalEnergyBurned, w.Harmonized.TotalEnergyBurnedUnit = nil, ""
	_, err = DehydrateWorkout(w)
	if !errors.Is(err, hkerror.ErrInvalidValue) || !strings.Contains(err.Error(), "totalEnergyBurned") {
		t.Errorf("missing energy err = %v, want InvalidValue naming totalEnergyBurned", err)
	}
}

// TestTableCoversEveryKind verifies each kind resolves to allocators of the
// matching native and portable types.
func TestTableCoversEveryKind(t *testing.T) {
	for _, kind := range models.Kinds() {
		e, err := lookup(kind)
		if err != nil {
			t.Errorf("lookup(%q): %v", kind, err)
			continue
		}
		if got, err := KindOf(e.newObject()); err != nil || got != kind {
			t.Errorf("KindOf(newObject) = %q, %v; want %q", got, err, kind)
		}
		if got := e.newRecord().RecordKind(); got != kind {
			t.Errorf("newRecord().RecordKind() = %q, want %q", got, kind)
		}
	}
	if _, err := Dehydrate(nil); !errors.Is(err, hkerror.ErrInvalidIdentifier) {
		t.Errorf("Dehydrate(nil) err = %v, want InvalidIdentifier", err)
	}
}
