package healthkit

import "time"

// Window selects samples by their start and end dates. With Strict set a
// sample must lie entirely inside the window; otherwise any overlap matches.
// A zero bound is open.
type Window struct {
	Start  time.Time
	End    time.Time
	Strict bool
}

// AllSamples is the unbounded window.
func AllSamples() Window {
	return Window{}
}

// SamplesBetween returns a window with strict start and end bounds.
func SamplesBetween(start, end time.Time) Window {
	return Window{Start: start, End: end, Strict: true}
}

// Contains reports whether a sample spanning [start, end] falls in w.
func (w Window) Contains(start, end time.Time) bool {
	if w.Strict {
		if !w.Start.IsZero() && start.Before(w.Start) {
			return false
		}
		if !w.End.IsZero() && end.After(w.End) {
			return false
		}
		return true
	}
	if !w.Start.IsZero() && end.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && start.After(w.End) {
		return false
	}
	return true
}
