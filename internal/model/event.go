package model

// Event is a calendar event as held by the backing calendar store. The engine
// never persists events itself; it only reads them for conflict checks and
// requests mutations through the repository boundary.
type Event struct {
	ID          string // opaque ID assigned by the backing store
	Title       string
	Range       TimeRange
	Description string
	Location    string
	HTMLLink    string // deep link into the backing store's web UI
}

// ConflictReport is the result of a conflict check. Conflicts keep the
// backing store's native return order (start-time ascending) so "the first
// conflicting event" is deterministic for a single query.
type ConflictReport struct {
	Requested TimeRange
	Conflicts []Event
}

// HasConflicts reports whether any existing event overlaps the requested range.
func (r ConflictReport) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// SlotCandidate is a scored suggestion produced by the optimal-time search.
type SlotCandidate struct {
	Range     TimeRange
	Score     int // 1..10
	Rationale string
}
