package healthkit

import (
	"encoding/json"
	"sort"

	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/units"
)

// Family groups native object types by the shape of the objects they describe.
type Family int

const (
	FamilyQuantity Family = iota + 1
	FamilyCategory
	FamilyCorrelation
	FamilyWorkout
	FamilyWorkoutEvent
	FamilyActivitySummary
	FamilyElectrocardiogram
	FamilyHeartbeatSeries
	FamilyCharacteristic
)

func (f Family) String() string {
	switch f {
	case FamilyQuantity:
		return "quantity"
	case FamilyCategory:
		return "category"
	case FamilyCorrelation:
		return "correlation"
	case FamilyWorkout:
		return "workout"
	case FamilyWorkoutEvent:
		return "workoutEvent"
	case FamilyActivitySummary:
		return "activitySummary"
	case FamilyElectrocardiogram:
		return "electrocardiogram"
	case FamilyHeartbeatSeries:
		return "heartbeatSeries"
	case FamilyCharacteristic:
		return "characteristic"
	}
	return "unknown"
}

// ObjectType is a native type identifier together with its family.
type ObjectType struct {
	Identifier string `json:"identifier"`
	Family     Family `json:"-"`
}

// Singleton object types.
var (
	WorkoutType            = ObjectType{Identifier: "HKWorkoutTypeIdentifier", Family: FamilyWorkout}
	WorkoutEventObjectType = ObjectType{Identifier: "HKWorkoutEventTypeIdentifier", Family: FamilyWorkoutEvent}
	ActivitySummaryType    = ObjectType{Identifier: "HKActivitySummaryTypeIdentifier", Family: FamilyActivitySummary}
	ElectrocardiogramType  = ObjectType{Identifier: "HKDataTypeIdentifierElectrocardiogram", Family: FamilyElectrocardiogram}
	HeartbeatSeriesType    = ObjectType{Identifier: "HKDataTypeIdentifierHeartbeatSeries", Family: FamilyHeartbeatSeries}
	CharacteristicType     = ObjectType{Identifier: "HKCharacteristicTypeIdentifier", Family: FamilyCharacteristic}
)

var singletons = []ObjectType{
	WorkoutType, WorkoutEventObjectType, ActivitySummaryType,
	ElectrocardiogramType, HeartbeatSeriesType, CharacteristicType,
}

// QuantityType is a quantity sample type with the unit its values are
// reported in.
type QuantityType struct {
	ObjectType
	PreferredUnit units.Unit
}

// CategoryType is a category sample type with its allowed value codes.
type CategoryType struct {
	ObjectType
	values map[int]string
}

// ValueLabel returns the label of a category value code.
func (c CategoryType) ValueLabel(v int) (string, bool) {
	l, ok := c.values[v]
	return l, ok
}

// ResolveValue validates a raw category value code for this type.
func (c CategoryType) ResolveValue(v int) (int, error) {
	if _, ok := c.values[v]; !ok {
		return 0, hkerror.InvalidTypef("value %d is not a %s value", v, c.Identifier)
	}
	return v, nil
}

// CorrelationType is a correlation type.
type CorrelationType struct {
	ObjectType
}

const (
	qtyPrefix = "HKQuantityTypeIdentifier"
	catPrefix = "HKCategoryTypeIdentifier"
	corPrefix = "HKCorrelationTypeIdentifier"
)

var quantityTypes = map[string]QuantityType{}

func quantity(name string, u units.Unit) QuantityType {
	t := QuantityType{ObjectType: ObjectType{Identifier: qtyPrefix + name, Family: FamilyQuantity}, PreferredUnit: u}
	quantityTypes[t.Identifier] = t
	return t
}

var (
	StepCount                  = quantity("StepCount", units.Count)
	DistanceWalkingRunning     = quantity("DistanceWalkingRunning", units.Meter)
	DistanceCycling            = quantity("DistanceCycling", units.Meter)
	DistanceSwimming           = quantity("DistanceSwimming", units.Meter)
	DistanceWheelchair         = quantity("DistanceWheelchair", units.Meter)
	PushCount                  = quantity("PushCount", units.Count)
	SwimmingStrokeCount        = quantity("SwimmingStrokeCount", units.Count)
	FlightsClimbed             = quantity("FlightsClimbed", units.Count)
	ActiveEnergyBurned         = quantity("ActiveEnergyBurned", units.LargeCalorie)
	BasalEnergyBurned          = quantity("BasalEnergyBurned", units.LargeCalorie)
	AppleExerciseTime          = quantity("AppleExerciseTime", units.Minute)
	AppleStandTime             = quantity("AppleStandTime", units.Minute)
	HeartRate                  = quantity("HeartRate", units.CountPerMinute)
	RestingHeartRate           = quantity("RestingHeartRate", units.CountPerMinute)
	WalkingHeartRateAverage    = quantity("WalkingHeartRateAverage", units.CountPerMinute)
	HeartRateVariabilitySDNN   = quantity("HeartRateVariabilitySDNN", units.Millisecond)
	OxygenSaturation           = quantity("OxygenSaturation", units.Percent)
	RespiratoryRate            = quantity("RespiratoryRate", units.CountPerMinute)
	BodyTemperature            = quantity("BodyTemperature", units.DegreeCelsius)
	BasalBodyTemperature       = quantity("BasalBodyTemperature", units.DegreeCelsius)
	BloodPressureSystolic      = quantity("BloodPressureSystolic", units.MillimeterOfMercury)
	BloodPressureDiastolic     = quantity("BloodPressureDiastolic", units.MillimeterOfMercury)
	BloodGlucose               = quantity("BloodGlucose", units.MilligramPerDeciliter)
	BodyMass                   = quantity("BodyMass", units.Kilogram)
	LeanBodyMass               = quantity("LeanBodyMass", units.Kilogram)
	Height                     = quantity("Height", units.Centimeter)
	BodyMassIndex              = quantity("BodyMassIndex", units.Count)
	BodyFatPercentage          = quantity("BodyFatPercentage", units.Percent)
	WaistCircumference         = quantity("WaistCircumference", units.Centimeter)
	VO2Max                     = quantity("VO2Max", units.VO2MaxUnit)
	WalkingSpeed               = quantity("WalkingSpeed", units.MeterPerSecond)
	DietaryEnergyConsumed      = quantity("DietaryEnergyConsumed", units.LargeCalorie)
	DietaryWater               = quantity("DietaryWater", units.Milliliter)
	DietaryProtein             = quantity("DietaryProtein", units.Gram)
	DietaryCarbohydrates       = quantity("DietaryCarbohydrates", units.Gram)
	DietaryFatTotal            = quantity("DietaryFatTotal", units.Gram)
	DietaryCaffeine            = quantity("DietaryCaffeine", units.Milligram)
	EnvironmentalAudioExposure = quantity("EnvironmentalAudioExposure", units.DecibelASPL)
	HeadphoneAudioExposure     = quantity("HeadphoneAudioExposure", units.DecibelASPL)
)

var categoryTypes = map[string]CategoryType{}

func category(name string, values map[int]string) CategoryType {
	t := CategoryType{ObjectType: ObjectType{Identifier: catPrefix + name, Family: FamilyCategory}, values: values}
	categoryTypes[t.Identifier] = t
	return t
}

var notApplicable = map[int]string{0: "notApplicable"}

var severity = map[int]string{0: "unspecified", 1: "notPresent", 2: "mild", 3: "moderate", 4: "severe"}

var (
	SleepAnalysis = category("SleepAnalysis", map[int]string{
		0: "inBed", 1: "asleepUnspecified", 2: "awake", 3: "asleepCore", 4: "asleepDeep", 5: "asleepREM",
	})
	AppleStandHour            = category("AppleStandHour", map[int]string{0: "stood", 1: "idle"})
	MindfulSession            = category("MindfulSession", notApplicable)
	HighHeartRateEvent        = category("HighHeartRateEvent", notApplicable)
	LowHeartRateEvent         = category("LowHeartRateEvent", notApplicable)
	IrregularHeartRhythmEvent = category("IrregularHeartRhythmEvent", notApplicable)
	ToothbrushingEvent        = category("ToothbrushingEvent", notApplicable)
	HandwashingEvent          = category("HandwashingEvent", notApplicable)
	MenstrualFlow             = category("MenstrualFlow", map[int]string{
		1: "unspecified", 2: "light", 3: "medium", 4: "heavy", 5: "none",
	})
	CervicalMucusQuality = category("CervicalMucusQuality", map[int]string{
		1: "dry", 2: "sticky", 3: "creamy", 4: "watery", 5: "eggWhite",
	})
	OvulationTestResult = category("OvulationTestResult", map[int]string{
		1: "negative", 2: "luteinizingHormoneSurge", 3: "indeterminate", 4: "estrogenSurge",
	})
	AudioExposureEvent    = category("AudioExposureEvent", map[int]string{1: "loudEnvironment"})
	LowCardioFitnessEvent = category("LowCardioFitnessEvent", map[int]string{1: "lowFitness"})
	Headache              = category("Headache", severity)
	Fatigue               = category("Fatigue", severity)
	Nausea                = category("Nausea", severity)
)

var correlationTypes = map[string]CorrelationType{}

func correlation(name string) CorrelationType {
	t := CorrelationType{ObjectType: ObjectType{Identifier: corPrefix + name, Family: FamilyCorrelation}}
	correlationTypes[t.Identifier] = t
	return t
}

var (
	BloodPressure = correlation("BloodPressure")
	Food          = correlation("Food")
)

// QuantityTypeForIdentifier looks up a quantity type.
func QuantityTypeForIdentifier(id string) (QuantityType, bool) {
	t, ok := quantityTypes[id]
	return t, ok
}

// CategoryTypeForIdentifier looks up a category type.
func CategoryTypeForIdentifier(id string) (CategoryType, bool) {
	t, ok := categoryTypes[id]
	return t, ok
}

// CorrelationTypeForIdentifier looks up a correlation type.
func CorrelationTypeForIdentifier(id string) (CorrelationType, bool) {
	t, ok := correlationTypes[id]
	return t, ok
}

// ObjectTypeForIdentifier resolves any identifier in the closed type
// enumeration. Unknown identifiers fail with InvalidIdentifier.
func ObjectTypeForIdentifier(id string) (ObjectType, error) {
	if t, ok := quantityTypes[id]; ok {
		return t.ObjectType, nil
	}
	if t, ok := categoryTypes[id]; ok {
		return t.ObjectType, nil
	}
	if t, ok := correlationTypes[id]; ok {
		return t.ObjectType, nil
	}
	for _, t := range singletons {
		if t.Identifier == id {
			return t, nil
		}
	}
	return ObjectType{}, hkerror.InvalidIdentifierf("invalid identifier: %s", id)
}

// Identifiers lists every identifier of the closed type enumeration, sorted.
func Identifiers() []string {
	out := make([]string, 0, len(quantityTypes)+len(categoryTypes)+len(correlationTypes)+len(singletons))
	for id := range quantityTypes {
		out = append(out, id)
	}
	for id := range categoryTypes {
		out = append(out, id)
	}
	for id := range correlationTypes {
		out = append(out, id)
	}
	for _, t := range singletons {
		out = append(out, t.Identifier)
	}
	sort.Strings(out)
	return out
}

func (t QuantityType) MarshalJSON() ([]byte, error) { return json.Marshal(t.Identifier) }

func (t *QuantityType) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	qt, ok := QuantityTypeForIdentifier(id)
	if !ok {
		return hkerror.InvalidTypef("quantity type identifier %q is not recognized", id)
	}
	*t = qt
	return nil
}

func (t CategoryType) MarshalJSON() ([]byte, error) { return json.Marshal(t.Identifier) }

func (t *CategoryType) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	ct, ok := CategoryTypeForIdentifier(id)
	if !ok {
		return hkerror.InvalidTypef("category type identifier %q is not recognized", id)
	}
	*t = ct
	return nil
}

func (t CorrelationType) MarshalJSON() ([]byte, error) { return json.Marshal(t.Identifier) }

func (t *CorrelationType) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	ct, ok := CorrelationTypeForIdentifier(id)
	if !ok {
		return hkerror.InvalidTypef("correlation type identifier %q is not recognized", id)
	}
	*t = ct
	return nil
}
