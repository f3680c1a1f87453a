package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/units"
)

// Metadata is the portable metadata mapping. Every native value is stored as
// its canonical string rendering, so non-string values do not survive a round
// trip with their original type: {"foo": 42} comes back as {"foo": "42"}.
type Metadata map[string]string

// NewMetadata renders native metadata. Absent metadata stays absent.
func NewMetadata(m healthkit.Metadata) Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = renderValue(v)
	}
	return out
}

// Original returns the native metadata with string values only.
func (m Metadata) Original() healthkit.Metadata {
	if m == nil {
		return nil
	}
	out := make(healthkit.Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// formatFloat writes whole numbers without an exponent so integers decoded
// as float64 render as they were written.
func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case json.Number:
		return x.String()
	case time.Time:
		return FormatTimestamp(x)
	case units.Quantity:
		return x.String()
	case *units.Quantity:
		if x == nil {
			return ""
		}
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
