package units

import (
	"fmt"
	"math"
	"strconv"

	"github.com/claude/hkreporter/internal/hkerror"
)

// Quantity is a native physical quantity: a value in a unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// New returns a Quantity of v in u.
func New(v float64, u Unit) *Quantity {
	return &Quantity{Value: v, Unit: u}
}

// IsCompatible reports whether q can be expressed in u.
func (q Quantity) IsCompatible(u Unit) bool {
	return q.Unit.IsCompatible(u)
}

// DoubleValue returns the value of q expressed in u.
func (q Quantity) DoubleValue(u Unit) (float64, error) {
	if !q.IsCompatible(u) {
		return 0, hkerror.InvalidValuef("quantity in %q cannot be expressed in %q", q.Unit, u)
	}
	if q.Unit.symbol == u.symbol {
		return q.Value, nil
	}
	return u.fromBase(q.Unit.toBase(q.Value)), nil
}

// Equal reports whether q and o describe the same physical amount within the
// relative tolerance tol.
func (q Quantity) Equal(o Quantity, tol float64) bool {
	v, err := o.DoubleValue(q.Unit)
	if err != nil {
		return false
	}
	return approxEqual(q.Value, v, tol)
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + " " + q.Unit.symbol
}

func approxEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol*scale
}

// Encode expresses a native quantity in the unit chosen by the caller and
// returns the plain value with its unit string. It fails with InvalidValue
// when q is absent or of a different dimension.
func Encode(q *Quantity, u Unit) (float64, string, error) {
	if q == nil {
		return 0, "", hkerror.InvalidValuef("quantity is absent")
	}
	v, err := q.DoubleValue(u)
	if err != nil {
		return 0, "", err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "", hkerror.InvalidValuef("quantity %s is not finite in %q", q, u)
	}
	return v, u.symbol, nil
}

// Decode rebuilds a native quantity from a value and a unit string.
func Decode(v float64, unit string) (Quantity, error) {
	u, err := Parse(unit)
	if err != nil {
		return Quantity{}, fmt.Errorf("decoding %v: %w", v, err)
	}
	return Quantity{Value: v, Unit: u}, nil
}
