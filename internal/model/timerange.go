package model

import "time"

// TimeRange is a half-open interval [Start, End). Both endpoints carry an
// explicit UTC offset; naive timestamps are rejected at the parsing boundary.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the range is well-formed (Start strictly before End).
func (r TimeRange) Valid() bool {
	return r.Start.Before(r.End)
}

// Overlaps reports whether two ranges intersect. Half-open semantics:
// back-to-back ranges (r.End == other.Start) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
