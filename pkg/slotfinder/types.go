package slotfinder

import "time"

// Range is a half-open time interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// Request describes an open-slot search.
type Request struct {
	Duration    time.Duration // minimum slot length; partial fits are never offered
	Busy        []Range       // occupied ranges; may overlap or be unsorted
	SearchStart time.Time     // inclusive lower bound of the search
	HorizonEnd  time.Time     // exclusive upper bound of the search
	MaxResults  int           // cap on emitted slots; <= 0 means unbounded
}
