// Package healthkit models the native objects handed over by the health-data
// platform: samples, workouts, summaries and the provenance values they carry.
//
// Optional native attributes are pointers; a nil pointer means the platform
// did not supply the attribute.
package healthkit

import (
	"fmt"
	"time"
)

// Object is a native record. The set of implementations is closed: only the
// kinds declared in this package satisfy it.
type Object interface {
	object()
}

func (*QuantitySample) object()    {}
func (*CategorySample) object()    {}
func (*Correlation) object()       {}
func (*Statistics) object()        {}
func (*ActivitySummary) object()   {}
func (*Workout) object()           {}
func (*WorkoutEvent) object()      {}
func (*Electrocardiogram) object() {}
func (*Characteristics) object()   {}
func (*HeartbeatSeries) object()   {}

// Device describes the hardware that produced a sample. Every attribute is
// optional.
type Device struct {
	Name                *string `json:"name,omitempty"`
	Manufacturer        *string `json:"manufacturer,omitempty"`
	Model               *string `json:"model,omitempty"`
	HardwareVersion     *string `json:"hardwareVersion,omitempty"`
	FirmwareVersion     *string `json:"firmwareVersion,omitempty"`
	SoftwareVersion     *string `json:"softwareVersion,omitempty"`
	LocalIdentifier     *string `json:"localIdentifier,omitempty"`
	UDIDeviceIdentifier *string `json:"udiDeviceIdentifier,omitempty"`
}

// Source is the app or device that saved a sample.
type Source struct {
	Name             string `json:"name"`
	BundleIdentifier string `json:"bundleIdentifier"`
}

// OperatingSystemVersion is the OS version a source was running.
type OperatingSystemVersion struct {
	Major int `json:"majorVersion"`
	Minor int `json:"minorVersion"`
	Patch int `json:"patchVersion"`
}

// String renders the version as "major.minor.patch".
func (v OperatingSystemVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// SourceRevision identifies the exact version of the source that saved a sample.
type SourceRevision struct {
	Source                 Source                 `json:"source"`
	Version                *string                `json:"version,omitempty"`
	ProductType            *string                `json:"productType,omitempty"`
	OperatingSystemVersion OperatingSystemVersion `json:"operatingSystemVersion"`
}

// SystemVersion mirrors the platform's derived string property.
func (r SourceRevision) SystemVersion() string {
	return r.OperatingSystemVersion.String()
}

// Metadata is the native metadata dictionary. Values may be of any type:
// strings, numbers, booleans, dates, quantities or nested collections.
type Metadata map[string]any

// DateComponents is a calendar day without a time of day.
type DateComponents struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsZero reports whether no component is set.
func (d DateComponents) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Date returns midnight of the day in loc.
func (d DateComponents) Date(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// DateComponentsOf returns the calendar day of t in t's location.
func DateComponentsOf(t time.Time) DateComponents {
	return DateComponents{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Ptr returns a pointer to v. Handy for optional attributes.
func Ptr[T any](v T) *T {
	return &v
}
