package healthkit

import (
	"fmt"

	"github.com/claude/hkreporter/internal/hkerror"
)

// codeTable maps the raw codes of a native enumeration to their labels.
type codeTable[T ~int] struct {
	name   string
	labels map[T]string
}

func (t codeTable[T]) label(code T) string {
	if l, ok := t.labels[code]; ok {
		return l
	}
	return fmt.Sprintf("%s(%d)", t.name, int(code))
}

func (t codeTable[T]) resolve(code int) (T, error) {
	v := T(code)
	if _, ok := t.labels[v]; !ok {
		return 0, hkerror.InvalidTypef("%s code %d is not recognized", t.name, code)
	}
	return v, nil
}

// WorkoutActivityType is the kind of activity performed during a workout.
type WorkoutActivityType int

var workoutActivityTypes = codeTable[WorkoutActivityType]{name: "WorkoutActivityType", labels: map[WorkoutActivityType]string{
	1: "americanFootball", 2: "archery", 3: "australianFootball", 4: "badminton",
	5: "baseball", 6: "basketball", 7: "bowling", 8: "boxing", 9: "climbing",
	10: "cricket", 11: "crossTraining", 12: "curling", 13: "cycling", 14: "dance",
	15: "danceInspiredTraining", 16: "elliptical", 17: "equestrianSports",
	18: "fencing", 19: "fishing", 20: "functionalStrengthTraining", 21: "golf",
	22: "gymnastics", 23: "handball", 24: "hiking", 25: "hockey", 26: "hunting",
	27: "lacrosse", 28: "martialArts", 29: "mindAndBody",
	30: "mixedMetabolicCardioTraining", 31: "paddleSports", 32: "play",
	33: "preparationAndRecovery", 34: "racquetball", 35: "rowing", 36: "rugby",
	37: "running", 38: "sailing", 39: "skatingSports", 40: "snowSports",
	41: "soccer", 42: "softball", 43: "squash", 44: "stairClimbing",
	45: "surfingSports", 46: "swimming", 47: "tableTennis", 48: "tennis",
	49: "trackAndField", 50: "traditionalStrengthTraining", 51: "volleyball",
	52: "walking", 53: "waterFitness", 54: "waterPolo", 55: "waterSports",
	56: "wrestling", 57: "yoga", 58: "barre", 59: "coreTraining",
	60: "crossCountrySkiing", 61: "downhillSkiing", 62: "flexibility",
	63: "highIntensityIntervalTraining", 64: "jumpRope", 65: "kickboxing",
	66: "pilates", 67: "snowboarding", 68: "stairs", 69: "stepTraining",
	70: "wheelchairWalkPace", 71: "wheelchairRunPace", 72: "taiChi",
	73: "mixedCardio", 74: "handCycling", 75: "discSports", 76: "fitnessGaming",
	77: "cardioDance", 78: "socialDance", 79: "pickleball", 80: "cooldown",
	82: "swimBikeRun", 83: "transition", 84: "underwaterDiving",
	3000: "other",
}}

const (
	WorkoutCycling  WorkoutActivityType = 13
	WorkoutRunning  WorkoutActivityType = 37
	WorkoutSwimming WorkoutActivityType = 46
	WorkoutStrength WorkoutActivityType = 50
	WorkoutWalking  WorkoutActivityType = 52
	WorkoutYoga     WorkoutActivityType = 57
	WorkoutOther    WorkoutActivityType = 3000
)

func (t WorkoutActivityType) String() string { return workoutActivityTypes.label(t) }

// WorkoutActivityTypeFromCode resolves a raw activity code.
func WorkoutActivityTypeFromCode(code int) (WorkoutActivityType, error) {
	return workoutActivityTypes.resolve(code)
}

// WorkoutEventType is the kind of event recorded inside a workout.
type WorkoutEventType int

const (
	WorkoutEventPause WorkoutEventType = iota + 1
	WorkoutEventResume
	WorkoutEventLap
	WorkoutEventMarker
	WorkoutEventMotionPaused
	WorkoutEventMotionResumed
	WorkoutEventSegment
	WorkoutEventPauseOrResumeRequest
)

var workoutEventTypes = codeTable[WorkoutEventType]{name: "WorkoutEventType", labels: map[WorkoutEventType]string{
	WorkoutEventPause:                "pause",
	WorkoutEventResume:               "resume",
	WorkoutEventLap:                  "lap",
	WorkoutEventMarker:               "marker",
	WorkoutEventMotionPaused:         "motionPaused",
	WorkoutEventMotionResumed:        "motionResumed",
	WorkoutEventSegment:              "segment",
	WorkoutEventPauseOrResumeRequest: "pauseOrResumeRequest",
}}

func (t WorkoutEventType) String() string { return workoutEventTypes.label(t) }

// WorkoutEventTypeFromCode resolves a raw workout event code.
func WorkoutEventTypeFromCode(code int) (WorkoutEventType, error) {
	return workoutEventTypes.resolve(code)
}

// ECGClassification is the rhythm classification of an electrocardiogram.
type ECGClassification int

const (
	ECGNotSet                    ECGClassification = 0
	ECGSinusRhythm               ECGClassification = 1
	ECGAtrialFibrillation        ECGClassification = 2
	ECGInconclusiveLowHeartRate  ECGClassification = 3
	ECGInconclusiveHighHeartRate ECGClassification = 4
	ECGInconclusivePoorReading   ECGClassification = 5
	ECGInconclusiveOther         ECGClassification = 6
	ECGUnrecognized              ECGClassification = 100
)

var ecgClassifications = codeTable[ECGClassification]{name: "ECGClassification", labels: map[ECGClassification]string{
	ECGNotSet:                    "notSet",
	ECGSinusRhythm:               "sinusRhythm",
	ECGAtrialFibrillation:        "atrialFibrillation",
	ECGInconclusiveLowHeartRate:  "inconclusiveLowHeartRate",
	ECGInconclusiveHighHeartRate: "inconclusiveHighHeartRate",
	ECGInconclusivePoorReading:   "inconclusivePoorReading",
	ECGInconclusiveOther:         "inconclusiveOther",
	ECGUnrecognized:              "unrecognized",
}}

func (c ECGClassification) String() string { return ecgClassifications.label(c) }

// ECGClassificationFromCode resolves a raw classification code.
func ECGClassificationFromCode(code int) (ECGClassification, error) {
	return ecgClassifications.resolve(code)
}

// ECGSymptomsStatus records whether the user reported symptoms.
type ECGSymptomsStatus int

const (
	SymptomsNotSet  ECGSymptomsStatus = 0
	SymptomsNone    ECGSymptomsStatus = 1
	SymptomsPresent ECGSymptomsStatus = 2
)

var ecgSymptoms = codeTable[ECGSymptomsStatus]{name: "ECGSymptomsStatus", labels: map[ECGSymptomsStatus]string{
	SymptomsNotSet:  "notSet",
	SymptomsNone:    "none",
	SymptomsPresent: "present",
}}

func (s ECGSymptomsStatus) String() string { return ecgSymptoms.label(s) }

// ECGSymptomsStatusFromCode resolves a raw symptoms status code.
func ECGSymptomsStatusFromCode(code int) (ECGSymptomsStatus, error) {
	return ecgSymptoms.resolve(code)
}

// BiologicalSex characteristic.
type BiologicalSex int

const (
	SexNotSet BiologicalSex = iota
	SexFemale
	SexMale
	SexOther
)

var biologicalSexes = codeTable[BiologicalSex]{name: "BiologicalSex", labels: map[BiologicalSex]string{
	SexNotSet: "notSet", SexFemale: "female", SexMale: "male", SexOther: "other",
}}

func (s BiologicalSex) String() string { return biologicalSexes.label(s) }

// BiologicalSexFromCode resolves a raw biological sex code.
func BiologicalSexFromCode(code int) (BiologicalSex, error) {
	return biologicalSexes.resolve(code)
}

// BloodType characteristic.
type BloodType int

const (
	BloodTypeNotSet BloodType = iota
	BloodTypeAPositive
	BloodTypeANegative
	BloodTypeBPositive
	BloodTypeBNegative
	BloodTypeABPositive
	BloodTypeABNegative
	BloodTypeOPositive
	BloodTypeONegative
)

var bloodTypes = codeTable[BloodType]{name: "BloodType", labels: map[BloodType]string{
	BloodTypeNotSet:     "notSet",
	BloodTypeAPositive:  "A+",
	BloodTypeANegative:  "A-",
	BloodTypeBPositive:  "B+",
	BloodTypeBNegative:  "B-",
	BloodTypeABPositive: "AB+",
	BloodTypeABNegative: "AB-",
	BloodTypeOPositive:  "O+",
	BloodTypeONegative:  "O-",
}}

func (b BloodType) String() string { return bloodTypes.label(b) }

// BloodTypeFromCode resolves a raw blood type code.
func BloodTypeFromCode(code int) (BloodType, error) {
	return bloodTypes.resolve(code)
}

// FitzpatrickSkinType characteristic.
type FitzpatrickSkinType int

var skinTypes = codeTable[FitzpatrickSkinType]{name: "FitzpatrickSkinType", labels: map[FitzpatrickSkinType]string{
	0: "notSet", 1: "I", 2: "II", 3: "III", 4: "IV", 5: "V", 6: "VI",
}}

func (s FitzpatrickSkinType) String() string { return skinTypes.label(s) }

// FitzpatrickSkinTypeFromCode resolves a raw skin type code.
func FitzpatrickSkinTypeFromCode(code int) (FitzpatrickSkinType, error) {
	return skinTypes.resolve(code)
}

// WheelchairUse characteristic.
type WheelchairUse int

const (
	WheelchairNotSet WheelchairUse = iota
	WheelchairNo
	WheelchairYes
)

var wheelchairUses = codeTable[WheelchairUse]{name: "WheelchairUse", labels: map[WheelchairUse]string{
	WheelchairNotSet: "notSet", WheelchairNo: "no", WheelchairYes: "yes",
}}

func (w WheelchairUse) String() string { return wheelchairUses.label(w) }

// WheelchairUseFromCode resolves a raw wheelchair use code.
func WheelchairUseFromCode(code int) (WheelchairUse, error) {
	return wheelchairUses.resolve(code)
}

// ActivityMoveMode selects how the move ring of an activity summary is measured.
type ActivityMoveMode int

const (
	MoveModeActiveEnergy  ActivityMoveMode = 1
	MoveModeAppleMoveTime ActivityMoveMode = 2
)

var moveModes = codeTable[ActivityMoveMode]{name: "ActivityMoveMode", labels: map[ActivityMoveMode]string{
	MoveModeActiveEnergy:  "activeEnergy",
	MoveModeAppleMoveTime: "appleMoveTime",
}}

func (m ActivityMoveMode) String() string { return moveModes.label(m) }

// ActivityMoveModeFromCode resolves a raw move mode code.
func ActivityMoveModeFromCode(code int) (ActivityMoveMode, error) {
	return moveModes.resolve(code)
}

// Enumeration describes one native enumeration for catalog listings.
type Enumeration struct {
	Name   string         `json:"name"`
	Values map[int]string `json:"values"`
}

func describe[T ~int](t codeTable[T]) Enumeration {
	values := make(map[int]string, len(t.labels))
	for code, label := range t.labels {
		values[int(code)] = label
	}
	return Enumeration{Name: t.name, Values: values}
}

// Enumerations lists every native enumeration with its codes.
func Enumerations() []Enumeration {
	return []Enumeration{
		describe(workoutActivityTypes),
		describe(workoutEventTypes),
		describe(ecgClassifications),
		describe(ecgSymptoms),
		describe(biologicalSexes),
		describe(bloodTypes),
		describe(skinTypes),
		describe(wheelchairUses),
		describe(moveModes),
	}
}
