package scheduling

import "github.com/lyanh238/VNASelf/internal/model"

// ResolutionState is the coordinator's position in a conflict workflow.
// The engine holds no session: state is surfaced on outputs and the caller
// carries the pending-create context into the next call.
type ResolutionState string

const (
	StateIdle              ResolutionState = "idle"
	StatePendingResolution ResolutionState = "pending_resolution"
	StateResolved          ResolutionState = "resolved"
	StateFailed            ResolutionState = "failed"
)

// DirectiveKind tags the caller's chosen way out of a conflict.
type DirectiveKind string

const (
	DirectiveCreateAnyway     DirectiveKind = "create_anyway"
	DirectiveRelocateNew      DirectiveKind = "relocate_new"
	DirectiveRelocateExisting DirectiveKind = "relocate_existing"
	DirectiveDeleteExisting   DirectiveKind = "delete_existing"
)

// ResolutionDirective is the caller's decision after being shown a
// ConflictReport. Consumed exactly once; each variant terminates the
// pending workflow (RelocateNew may re-enter PendingResolution).
type ResolutionDirective struct {
	Kind     DirectiveKind
	NewRange *model.TimeRange // RelocateNew, RelocateExisting
	EventID  string           // RelocateExisting, DeleteExisting
}

// CheckConflictsInput asks which existing events overlap a candidate range.
// ExcludeEventID skips one event, so a proposed move is not reported as
// conflicting with itself.
type CheckConflictsInput struct {
	Range          model.TimeRange
	ExcludeEventID string
}

// CreateEventInput is a structured create request. It doubles as the
// caller-carried pending context during conflict resolution.
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	Range       model.TimeRange
	ForceCreate bool
}

// CreateEventOutput is either a created event (StateResolved) or a conflict
// report awaiting a directive (StatePendingResolution).
type CreateEventOutput struct {
	State   ResolutionState
	Created *model.Event
	Report  *model.ConflictReport
}

// SuggestAlternativesInput searches open slots near an originally requested range.
type SuggestAlternativesInput struct {
	Original        model.TimeRange
	DurationMinutes int
	HorizonDays     int
	MaxResults      int
}

// SuggestAlternativesOutput echoes the searched duration and horizon so the
// caller can decide to widen either when Slots is empty.
type SuggestAlternativesOutput struct {
	Slots           []model.TimeRange
	DurationMinutes int
	HorizonDays     int
}

// SuggestOptimalInput asks for productivity-ranked slots for an activity.
type SuggestOptimalInput struct {
	ActivityType    string
	DurationMinutes int
	PreferredDate   string // optional; "2025-10-21", "today", "tomorrow", "next monday"
	HorizonDays     int
	MaxSuggestions  int
}

// SuggestOptimalOutput ranks candidates score-descending, ties broken by
// earliest start.
type SuggestOptimalOutput struct {
	Candidates      []model.SlotCandidate
	DurationMinutes int
	HorizonDays     int
}

// RelocateNewInput moves the pending request to a new range.
type RelocateNewInput struct {
	Pending  CreateEventInput
	NewRange model.TimeRange
}

// RelocateExistingInput moves the blocking event out of the way, then
// creates the pending request at its original range. All-or-nothing up to
// the backing store's limits.
type RelocateExistingInput struct {
	Pending  CreateEventInput
	EventID  string
	NewRange model.TimeRange
}

// DeleteExistingInput removes the blocking event, then creates the pending
// request.
type DeleteExistingInput struct {
	Pending CreateEventInput
	EventID string
}

// ResolveOutput is the terminal result of a resolution directive.
type ResolveOutput struct {
	State          ResolutionState
	Report         *model.ConflictReport // set when a relocation target still conflicts
	Moved          *model.Event
	DeletedEventID string
	Created        *model.Event
}

// ListEventsInput lists a single day's events, optionally filtered by text.
type ListEventsInput struct {
	Date  string // "2025-10-21" or a relative form
	Query string // case-insensitive match on title and description
}

// ListEventsOutput carries the day's events in store order.
type ListEventsOutput struct {
	Date   string
	Events []model.Event
}

// AvailabilityInput reports busy and free periods for part of a day.
type AvailabilityInput struct {
	Date       string
	StartClock string // "HH:MM", defaults to 00:00
	EndClock   string // "HH:MM", defaults to 24:00
}

// BusyPeriod is an occupied range with its event title.
type BusyPeriod struct {
	Range model.TimeRange
	Title string
}

// AvailabilityOutput lists busy periods and the free gaps between them.
type AvailabilityOutput struct {
	Date string
	Busy []BusyPeriod
	Free []model.TimeRange
}
