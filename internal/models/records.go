package models

import "time"

// Quantity is the portable form of a quantity sample.
type Quantity struct {
	SampleEnvelope
	Harmonized QuantityHarmonized `json:"harmonized"`
}

// QuantityHarmonized carries the measured value in the type's preferred unit.
type QuantityHarmonized struct {
	Value    *float64 `json:"value,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
}

func (Quantity) RecordKind() Kind { return KindQuantity }

// Category is the portable form of a category sample.
type Category struct {
	SampleEnvelope
	Harmonized CategoryHarmonized `json:"harmonized"`
}

// CategoryHarmonized carries the raw category value code.
type CategoryHarmonized struct {
	Value    int      `json:"value"`
	Metadata Metadata `json:"metadata,omitempty"`
}

func (Category) RecordKind() Kind { return KindCategory }

// Correlation is the portable form of a correlation and its member samples.
type Correlation struct {
	SampleEnvelope
	Harmonized CorrelationHarmonized `json:"harmonized"`
}

type CorrelationHarmonized struct {
	QuantityData []Quantity `json:"quantityData"`
	CategoryData []Category `json:"categoryData"`
	Metadata     Metadata   `json:"metadata,omitempty"`
}

func (Correlation) RecordKind() Kind { return KindCorrelation }

// Statistics is the portable form of an aggregate over one quantity type.
type Statistics struct {
	Identifier string               `json:"identifier"`
	StartDate  string               `json:"startDate"`
	EndDate    string               `json:"endDate"`
	Sources    []Source             `json:"sources,omitempty"`
	Harmonized StatisticsHarmonized `json:"harmonized"`
}

// StatisticsHarmonized holds the aggregates that were computed. Each is
// optional but at least one is present.
type StatisticsHarmonized struct {
	Summary     *float64 `json:"summary,omitempty"`
	SummaryUnit string   `json:"summaryUnit,omitempty"`
	Average     *float64 `json:"average,omitempty"`
	AverageUnit string   `json:"averageUnit,omitempty"`
	Recent      *float64 `json:"recent,omitempty"`
	RecentUnit  string   `json:"recentUnit,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	MinUnit     string   `json:"minUnit,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	MaxUnit     string   `json:"maxUnit,omitempty"`
}

func (Statistics) RecordKind() Kind { return KindStatistics }

func (s Statistics) TypeIdentifier() string { return s.Identifier }

func (s Statistics) Span() (time.Time, time.Time, error) {
	return parseInterval(s.StartDate, s.EndDate)
}

// ActivitySummary is the portable form of a daily activity summary.
type ActivitySummary struct {
	Identifier string                    `json:"identifier"`
	Date       string                    `json:"date"`
	Harmonized ActivitySummaryHarmonized `json:"harmonized"`
}

type ActivitySummaryHarmonized struct {
	ActiveEnergyBurned         *float64 `json:"activeEnergyBurned,omitempty"`
	ActiveEnergyBurnedUnit     string   `json:"activeEnergyBurnedUnit,omitempty"`
	ActiveEnergyBurnedGoal     *float64 `json:"activeEnergyBurnedGoal,omitempty"`
	ActiveEnergyBurnedGoalUnit string   `json:"activeEnergyBurnedGoalUnit,omitempty"`
	AppleMoveTime              *float64 `json:"appleMoveTime,omitempty"`
	AppleMoveTimeUnit          string   `json:"appleMoveTimeUnit,omitempty"`
	AppleMoveTimeGoal          *float64 `json:"appleMoveTimeGoal,omitempty"`
	AppleMoveTimeGoalUnit      string   `json:"appleMoveTimeGoalUnit,omitempty"`
	AppleExerciseTime          *float64 `json:"appleExerciseTime,omitempty"`
	AppleExerciseTimeUnit      string   `json:"appleExerciseTimeUnit,omitempty"`
	AppleExerciseTimeGoal      *float64 `json:"appleExerciseTimeGoal,omitempty"`
	AppleExerciseTimeGoalUnit  string   `json:"appleExerciseTimeGoalUnit,omitempty"`
	AppleStandHours            *float64 `json:"appleStandHours,omitempty"`
	AppleStandHoursUnit        string   `json:"appleStandHoursUnit,omitempty"`
	AppleStandHoursGoal        *float64 `json:"appleStandHoursGoal,omitempty"`
	AppleStandHoursGoalUnit    string   `json:"appleStandHoursGoalUnit,omitempty"`
	ActivityMoveMode           int      `json:"activityMoveMode"`
}

func (ActivitySummary) RecordKind() Kind { return KindActivitySummary }

func (a ActivitySummary) TypeIdentifier() string { return a.Identifier }

// Span covers the summary's calendar day.
func (a ActivitySummary) Span() (time.Time, time.Time, error) {
	d, err := ParseTimestamp(a.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return d, d.AddDate(0, 0, 1), nil
}

// Workout is the portable form of a workout with its events.
type Workout struct {
	SampleEnvelope
	WorkoutName   string            `json:"workoutName"`
	Duration      float64           `json:"duration"`
	WorkoutEvents []WorkoutEvent    `json:"workoutEvents"`
	Harmonized    WorkoutHarmonized `json:"harmonized"`
}

// WorkoutHarmonized carries the raw activity code and the workout totals.
// Energy is in large calories, distance in meters, counts dimensionless.
type WorkoutHarmonized struct {
	Value                        int      `json:"value"`
	TotalEnergyBurned            *float64 `json:"totalEnergyBurned,omitempty"`
	TotalEnergyBurnedUnit        string   `json:"totalEnergyBurnedUnit,omitempty"`
	TotalDistance                *float64 `json:"totalDistance,omitempty"`
	TotalDistanceUnit            string   `json:"totalDistanceUnit,omitempty"`
	TotalSwimmingStrokeCount     *float64 `json:"totalSwimmingStrokeCount,omitempty"`
	TotalSwimmingStrokeCountUnit string   `json:"totalSwimmingStrokeCountUnit,omitempty"`
	TotalFlightsClimbed          *float64 `json:"totalFlightsClimbed,omitempty"`
	TotalFlightsClimbedUnit      string   `json:"totalFlightsClimbedUnit,omitempty"`
	Metadata                     Metadata `json:"metadata,omitempty"`
}

func (Workout) RecordKind() Kind { return KindWorkout }

// WorkoutEvent is the portable form of an event inside a workout.
type WorkoutEvent struct {
	Identifier string                 `json:"identifier"`
	Type       string                 `json:"type"`
	StartDate  string                 `json:"startDate"`
	EndDate    string                 `json:"endDate"`
	Duration   float64                `json:"duration"`
	Harmonized WorkoutEventHarmonized `json:"harmonized"`
}

type WorkoutEventHarmonized struct {
	Value    int      `json:"value"`
	Metadata Metadata `json:"metadata,omitempty"`
}

func (WorkoutEvent) RecordKind() Kind { return KindWorkoutEvent }

func (e WorkoutEvent) TypeIdentifier() string { return e.Identifier }

func (e WorkoutEvent) Span() (time.Time, time.Time, error) {
	return parseInterval(e.StartDate, e.EndDate)
}

// Electrocardiogram is the portable form of an ECG recording.
type Electrocardiogram struct {
	SampleEnvelope
	NumberOfMeasurements int                         `json:"numberOfMeasurements"`
	Harmonized           ElectrocardiogramHarmonized `json:"harmonized"`
}

type ElectrocardiogramHarmonized struct {
	AverageHeartRate      *float64  `json:"averageHeartRate,omitempty"`
	AverageHeartRateUnit  string    `json:"averageHeartRateUnit,omitempty"`
	SamplingFrequency     *float64  `json:"samplingFrequency,omitempty"`
	SamplingFrequencyUnit string    `json:"samplingFrequencyUnit,omitempty"`
	Classification        int       `json:"classification"`
	SymptomsStatus        int       `json:"symptomsStatus"`
	VoltageMeasurements   []Voltage `json:"voltageMeasurements,omitempty"`
	Metadata              Metadata  `json:"metadata,omitempty"`
}

// Voltage is one ECG reading in microvolts.
type Voltage struct {
	TimeSinceSampleStart float64  `json:"timeSinceSampleStart"`
	Voltage              *float64 `json:"voltage,omitempty"`
	VoltageUnit          string   `json:"voltageUnit,omitempty"`
}

func (Electrocardiogram) RecordKind() Kind { return KindElectrocardiogram }

// HeartbeatSeries is the portable form of a beat-to-beat series.
type HeartbeatSeries struct {
	SampleEnvelope
	Harmonized HeartbeatSeriesHarmonized `json:"harmonized"`
}

type HeartbeatSeriesHarmonized struct {
	Count    int         `json:"count"`
	Beats    []Heartbeat `json:"beats"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// Heartbeat is one beat, timed in seconds from the start of the series.
type Heartbeat struct {
	TimeSinceSeriesStart float64 `json:"timeSinceSeriesStart"`
	PrecededByGap        bool    `json:"precededByGap"`
}

func (HeartbeatSeries) RecordKind() Kind { return KindHeartbeatSeries }

// Characteristics is the portable form of the user's characteristic profile.
type Characteristics struct {
	Identifier string                    `json:"identifier"`
	Harmonized CharacteristicsHarmonized `json:"harmonized"`
}

// CharacteristicsHarmonized holds raw enumeration codes and the optional
// birthday as a date-only string.
type CharacteristicsHarmonized struct {
	BiologicalSex int     `json:"biologicalSex"`
	BloodType     int     `json:"bloodType"`
	SkinType      int     `json:"skinType"`
	WheelchairUse int     `json:"wheelchairUse"`
	Birthday      *string `json:"birthday,omitempty"`
}

func (Characteristics) RecordKind() Kind { return KindCharacteristics }

func (c Characteristics) TypeIdentifier() string { return c.Identifier }

func (Characteristics) Span() (time.Time, time.Time, error) {
	return time.Time{}, time.Time{}, nil
}
