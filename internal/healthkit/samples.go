package healthkit

import (
	"time"

	"github.com/claude/hkreporter/internal/units"
)

// Sample holds the attributes shared by every timed native sample.
type Sample struct {
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Device         *Device        `json:"device,omitempty"`
	SourceRevision SourceRevision `json:"sourceRevision"`
	Metadata       Metadata       `json:"metadata,omitempty"`
}

// QuantitySample is a single numeric measurement.
type QuantitySample struct {
	Type     QuantityType    `json:"quantityType"`
	Quantity *units.Quantity `json:"quantity"`
	Sample
}

// CategorySample is a categorical observation such as a sleep stage.
type CategorySample struct {
	Type  CategoryType `json:"categoryType"`
	Value int          `json:"value"`
	Sample
}

// Correlation groups samples recorded together, such as the systolic and
// diastolic halves of a blood pressure reading.
type Correlation struct {
	Type            CorrelationType   `json:"correlationType"`
	QuantitySamples []*QuantitySample `json:"quantitySamples,omitempty"`
	CategorySamples []*CategorySample `json:"categorySamples,omitempty"`
	Sample
}

// Statistics is an aggregate computed over the samples of one quantity type.
type Statistics struct {
	Type       QuantityType    `json:"quantityType"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	Sources    []Source        `json:"sources,omitempty"`
	Average    *units.Quantity `json:"averageQuantity,omitempty"`
	Minimum    *units.Quantity `json:"minimumQuantity,omitempty"`
	Maximum    *units.Quantity `json:"maximumQuantity,omitempty"`
	Sum        *units.Quantity `json:"sumQuantity,omitempty"`
	MostRecent *units.Quantity `json:"mostRecentQuantity,omitempty"`
}

// ActivitySummary is the daily ring summary.
type ActivitySummary struct {
	Date                   DateComponents   `json:"dateComponents"`
	MoveMode               ActivityMoveMode `json:"activityMoveMode"`
	ActiveEnergyBurned     *units.Quantity  `json:"activeEnergyBurned,omitempty"`
	ActiveEnergyBurnedGoal *units.Quantity  `json:"activeEnergyBurnedGoal,omitempty"`
	AppleMoveTime          *units.Quantity  `json:"appleMoveTime,omitempty"`
	AppleMoveTimeGoal      *units.Quantity  `json:"appleMoveTimeGoal,omitempty"`
	AppleExerciseTime      *units.Quantity  `json:"appleExerciseTime,omitempty"`
	AppleExerciseTimeGoal  *units.Quantity  `json:"appleExerciseTimeGoal,omitempty"`
	AppleStandHours        *units.Quantity  `json:"appleStandHours,omitempty"`
	AppleStandHoursGoal    *units.Quantity  `json:"appleStandHoursGoal,omitempty"`
}

// Workout is a recorded training session. Duration is in seconds.
type Workout struct {
	ActivityType             WorkoutActivityType `json:"workoutActivityType"`
	Duration                 float64             `json:"duration"`
	Events                   []*WorkoutEvent     `json:"workoutEvents,omitempty"`
	TotalEnergyBurned        *units.Quantity     `json:"totalEnergyBurned,omitempty"`
	TotalDistance            *units.Quantity     `json:"totalDistance,omitempty"`
	TotalSwimmingStrokeCount *units.Quantity     `json:"totalSwimmingStrokeCount,omitempty"`
	TotalFlightsClimbed      *units.Quantity     `json:"totalFlightsClimbed,omitempty"`
	Sample
}

// WorkoutEvent is a pause, lap, segment or other marker inside a workout.
type WorkoutEvent struct {
	Type      WorkoutEventType `json:"type"`
	StartDate time.Time        `json:"startDate"`
	EndDate   time.Time        `json:"endDate"`
	Metadata  Metadata         `json:"metadata,omitempty"`
}

// Duration returns the length of the event's interval in seconds.
func (e *WorkoutEvent) Duration() float64 {
	return e.EndDate.Sub(e.StartDate).Seconds()
}

// VoltageMeasurement is one lead-I reading of an electrocardiogram.
type VoltageMeasurement struct {
	TimeSinceSampleStart float64         `json:"timeSinceSampleStart"`
	Voltage              *units.Quantity `json:"voltage"`
}

// Electrocardiogram is a single-lead ECG recording.
type Electrocardiogram struct {
	NumberOfVoltageMeasurements int                  `json:"numberOfVoltageMeasurements"`
	SamplingFrequency           *units.Quantity      `json:"samplingFrequency,omitempty"`
	AverageHeartRate            *units.Quantity      `json:"averageHeartRate,omitempty"`
	Classification              ECGClassification    `json:"classification"`
	SymptomsStatus              ECGSymptomsStatus    `json:"symptomsStatus"`
	Voltages                    []VoltageMeasurement `json:"voltageMeasurements,omitempty"`
	Sample
}

// Heartbeat is one beat of a heartbeat series.
type Heartbeat struct {
	TimeSinceSeriesStart float64 `json:"timeSinceSeriesStart"`
	PrecededByGap        bool    `json:"precededByGap"`
}

// HeartbeatSeries is the beat-to-beat timing recorded alongside HRV samples.
type HeartbeatSeries struct {
	Beats []Heartbeat `json:"heartbeats,omitempty"`
	Sample
}

// Characteristics is the user's profile of characteristic values. They are
// not samples and carry no dates or provenance.
type Characteristics struct {
	BiologicalSex BiologicalSex       `json:"biologicalSex"`
	BloodType     BloodType           `json:"bloodType"`
	SkinType      FitzpatrickSkinType `json:"fitzpatrickSkinType"`
	WheelchairUse WheelchairUse       `json:"wheelchairUse"`
	DateOfBirth   *DateComponents     `json:"dateOfBirthComponents,omitempty"`
}
