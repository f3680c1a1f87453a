package models

import (
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
)

// Device is the portable form of the hardware that produced a sample.
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

// NewDevice copies a native device. A nil device stays nil.
func NewDevice(d *healthkit.Device) *Device {
	if d == nil {
		return nil
	}
	return &Device{
		Name:                clone(d.Name),
		Manufacturer:        clone(d.Manufacturer),
		Model:               clone(d.Model),
		HardwareVersion:     clone(d.HardwareVersion),
		FirmwareVersion:     clone(d.FirmwareVersion),
		SoftwareVersion:     clone(d.SoftwareVersion),
		LocalIdentifier:     clone(d.LocalIdentifier),
		UDIDeviceIdentifier: clone(d.UDIDeviceIdentifier),
	}
}

// Original rebuilds the native device.
func (d *Device) Original() *healthkit.Device {
	if d == nil {
		return nil
	}
	return &healthkit.Device{
		Name:                clone(d.Name),
		Manufacturer:        clone(d.Manufacturer),
		Model:               clone(d.Model),
		HardwareVersion:     clone(d.HardwareVersion),
		FirmwareVersion:     clone(d.FirmwareVersion),
		SoftwareVersion:     clone(d.SoftwareVersion),
		LocalIdentifier:     clone(d.LocalIdentifier),
		UDIDeviceIdentifier: clone(d.UDIDeviceIdentifier),
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Source is the portable form of the app or device that saved a sample.
type Source struct {
	Name             string `json:"name"`
	BundleIdentifier string `json:"bundleIdentifier"`
}

// NewSource copies a native source.
func NewSource(s healthkit.Source) Source {
	return Source{Name: s.Name, BundleIdentifier: s.BundleIdentifier}
}

// Original rebuilds the native source.
func (s Source) Original() healthkit.Source {
	return healthkit.Source{Name: s.Name, BundleIdentifier: s.BundleIdentifier}
}

// OperatingSystem is the portable OS version triple.
type OperatingSystem struct {
	MajorVersion int `json:"majorVersion"`
	MinorVersion int `json:"minorVersion"`
	PatchVersion int `json:"patchVersion"`
}

// NewOperatingSystem copies a native OS version.
func NewOperatingSystem(v healthkit.OperatingSystemVersion) OperatingSystem {
	return OperatingSystem{MajorVersion: v.Major, MinorVersion: v.Minor, PatchVersion: v.Patch}
}

// Original rebuilds the native OS version. Components must be non-negative.
func (o OperatingSystem) Original() (healthkit.OperatingSystemVersion, error) {
	if o.MajorVersion < 0 || o.MinorVersion < 0 || o.PatchVersion < 0 {
		return healthkit.OperatingSystemVersion{}, hkerror.InvalidValuef(
			"operating system version %d.%d.%d has a negative component",
			o.MajorVersion, o.MinorVersion, o.PatchVersion)
	}
	return healthkit.OperatingSystemVersion{Major: o.MajorVersion, Minor: o.MinorVersion, Patch: o.PatchVersion}, nil
}

// SourceRevision is the portable form of a native source revision.
type SourceRevision struct {
	Source          Source          `json:"source"`
	Version         *string         `json:"version,omitempty"`
	ProductType     *string         `json:"productType,omitempty"`
	SystemVersion   string          `json:"systemVersion"`
	OperatingSystem OperatingSystem `json:"operatingSystem"`
}

// NewSourceRevision copies a native source revision.
func NewSourceRevision(r healthkit.SourceRevision) SourceRevision {
	return SourceRevision{
		Source:          NewSource(r.Source),
		Version:         clone(r.Version),
		ProductType:     clone(r.ProductType),
		SystemVersion:   r.SystemVersion(),
		OperatingSystem: NewOperatingSystem(r.OperatingSystemVersion),
	}
}

// Original rebuilds the native source revision. Hand-built revisions without
// a systemVersion are rejected with InvalidType.
func (r SourceRevision) Original() (healthkit.SourceRevision, error) {
	if r.SystemVersion == "" {
		return healthkit.SourceRevision{}, hkerror.InvalidTypef("source revision of %q has no systemVersion", r.Source.Name)
	}
	os, err := r.OperatingSystem.Original()
	if err != nil {
		return healthkit.SourceRevision{}, err
	}
	return healthkit.SourceRevision{
		Source:                 r.Source.Original(),
		Version:                clone(r.Version),
		ProductType:            clone(r.ProductType),
		OperatingSystemVersion: os,
	}, nil
}
