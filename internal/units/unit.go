// Package units converts native physical quantities to plain numbers tagged
// with a unit string, and back.
//
// Units are an explicit enumeration with fixed conversion factors to a base
// unit per dimension. Compound units are written the way the platform writes
// them: a product of simple units, optionally followed by "/" and the product
// forming the denominator ("count/min", "mL/kg*min", "mg/dL").
package units

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/claude/hkreporter/internal/hkerror"
)

type base int

const (
	baseLength base = iota
	baseMass
	baseTime
	baseEnergy
	baseTemperature
	basePressure
	baseVoltage
	baseSoundLevel
	numBases
)

// dimension holds the exponent of every base dimension. Dimensionless units
// (count, percent) have all-zero exponents.
type dimension [numBases]int8

func (d dimension) mul(o dimension, sign int8) dimension {
	for i := range d {
		d[i] += sign * o[i]
	}
	return d
}

// Unit is a physical unit. The zero value is not a valid unit; use the
// predefined values or Parse.
type Unit struct {
	symbol string
	dim    dimension
	factor float64 // multiply to reach the base unit
	offset float64 // added after factor; only temperature scales use it
}

// String returns the platform unit string.
func (u Unit) String() string { return u.symbol }

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool { return u.symbol == "" }

// IsCompatible reports whether values in u can be expressed in o.
func (u Unit) IsCompatible(o Unit) bool {
	return !u.IsZero() && !o.IsZero() && u.dim == o.dim
}

func (u Unit) toBase(v float64) float64   { return v*u.factor + u.offset }
func (u Unit) fromBase(v float64) float64 { return (v - u.offset) / u.factor }

// MarshalJSON renders the unit as its string.
func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.symbol)
}

// UnmarshalJSON parses a unit string.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func simple(symbol string, b base, factor float64) Unit {
	var d dimension
	d[b] = 1
	return Unit{symbol: symbol, dim: d, factor: factor}
}

func scalar(symbol string, factor float64) Unit {
	return Unit{symbol: symbol, factor: factor}
}

// Conversion factors to the base unit of each dimension:
// length m, mass g, time s, energy J, temperature K, pressure Pa, voltage V.
// Volume is length cubed with the litre defined as 1e-3 m³.
var table = map[string]Unit{}

var (
	Count   = register(scalar("count", 1))
	Percent = register(scalar("%", 0.01))

	Meter      = register(simple("m", baseLength, 1))
	Kilometer  = register(simple("km", baseLength, 1e3))
	Centimeter = register(simple("cm", baseLength, 1e-2))
	Millimeter = register(simple("mm", baseLength, 1e-3))
	Inch       = register(simple("in", baseLength, 0.0254))
	Foot       = register(simple("ft", baseLength, 0.3048))
	Yard       = register(simple("yd", baseLength, 0.9144))
	Mile       = register(simple("mi", baseLength, 1609.344))

	Gram      = register(simple("g", baseMass, 1))
	Kilogram  = register(simple("kg", baseMass, 1e3))
	Milligram = register(simple("mg", baseMass, 1e-3))
	Microgram = register(simple("mcg", baseMass, 1e-6))
	Pound     = register(simple("lb", baseMass, 453.59237))
	Ounce     = register(simple("oz", baseMass, 28.349523125))
	Stone     = register(simple("st", baseMass, 6350.29318))

	Joule        = register(simple("J", baseEnergy, 1))
	Kilojoule    = register(simple("kJ", baseEnergy, 1e3))
	SmallCalorie = register(simple("cal", baseEnergy, 4.184))
	Kilocalorie  = register(simple("kcal", baseEnergy, 4184))
	LargeCalorie = register(simple("Cal", baseEnergy, 4184))

	Second      = register(simple("s", baseTime, 1))
	Millisecond = register(simple("ms", baseTime, 1e-3))
	Minute      = register(simple("min", baseTime, 60))
	Hour        = register(simple("hr", baseTime, 3600))
	Day         = register(simple("d", baseTime, 86400))

	Liter         = register(volume("L", 1e-3))
	Milliliter    = register(volume("mL", 1e-6))
	Deciliter     = register(volume("dL", 1e-4))
	FluidOunceUS  = register(volume("fl_oz_us", 29.5735295625e-6))
	FluidOunceImp = register(volume("fl_oz_imp", 28.4130625e-6))
	CupUS         = register(volume("cup_us", 236.5882365e-6))

	Pascal              = register(simple("Pa", basePressure, 1))
	Kilopascal          = register(simple("kPa", basePressure, 1e3))
	MillimeterOfMercury = register(simple("mmHg", basePressure, 133.322387415))
	CentimeterOfWater   = register(simple("cmAq", basePressure, 98.0665))
	Atmosphere          = register(simple("atm", basePressure, 101325))

	Kelvin           = register(simple("K", baseTemperature, 1))
	DegreeCelsius    = register(Unit{symbol: "degC", dim: dimOf(baseTemperature), factor: 1, offset: 273.15})
	DegreeFahrenheit = register(Unit{symbol: "degF", dim: dimOf(baseTemperature), factor: 5.0 / 9.0, offset: 459.67 * 5.0 / 9.0})

	Volt      = register(simple("V", baseVoltage, 1))
	Millivolt = register(simple("mV", baseVoltage, 1e-3))
	Microvolt = register(simple("mcV", baseVoltage, 1e-6))

	Hertz = register(Unit{symbol: "Hz", dim: dimension{}.mul(dimOf(baseTime), -1), factor: 1})

	DecibelASPL = register(simple("dBASPL", baseSoundLevel, 1))
)

// Compound units used by the harmonizers. Built through Parse so that a
// decoded unit string compares equal to these values.
var (
	CountPerMinute        = MustParse("count/min")
	MeterPerSecond        = MustParse("m/s")
	KilometerPerHour      = MustParse("km/hr")
	MilligramPerDeciliter = MustParse("mg/dL")
	VO2MaxUnit            = MustParse("mL/kg*min")
)

func dimOf(b base) dimension {
	var d dimension
	d[b] = 1
	return d
}

func volume(symbol string, cubicMeters float64) Unit {
	var d dimension
	d[baseLength] = 3
	return Unit{symbol: symbol, dim: d, factor: cubicMeters}
}

func register(u Unit) Unit {
	table[u.symbol] = u
	return u
}

// Symbols returns every simple unit string the codec recognises, sorted.
func Symbols() []string {
	out := make([]string, 0, len(table))
	for s := range table {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Parse resolves a unit string. Unknown or malformed strings fail with an
// InvalidType error.
func Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unit{}, hkerror.InvalidTypef("empty unit string")
	}
	if u, ok := table[s]; ok {
		return u, nil
	}

	num, den, hasDen := strings.Cut(s, "/")
	u := Unit{symbol: s, factor: 1}
	if err := u.apply(num, 1); err != nil {
		return Unit{}, err
	}
	if hasDen {
		den = strings.TrimSuffix(strings.TrimPrefix(den, "("), ")")
		if err := u.apply(den, -1); err != nil {
			return Unit{}, err
		}
	}
	return u, nil
}

// apply multiplies (sign 1) or divides (sign -1) u by a "*"-separated
// product of simple units.
func (u *Unit) apply(product string, sign int8) error {
	for _, part := range strings.Split(product, "*") {
		part = strings.TrimSpace(part)
		p, ok := table[part]
		if !ok {
			return hkerror.InvalidTypef("unrecognized unit %q in %q", part, u.symbol)
		}
		if p.offset != 0 {
			return hkerror.InvalidTypef("unit %q cannot be part of a compound unit", part)
		}
		u.dim = u.dim.mul(p.dim, sign)
		if sign > 0 {
			u.factor *= p.factor
		} else {
			u.factor /= p.factor
		}
	}
	return nil
}

// MustParse is Parse for package-level unit values; it panics on error.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("units: %v", err))
	}
	return u
}
