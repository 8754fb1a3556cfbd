package productivity

// Window is a preferred time-of-day window, in minutes from midnight of the
// slot's own wall clock (so a +07:00 slot is judged by +07:00 hours).
type Window struct {
	StartMinute int
	EndMinute   int
	Rationale   string // shown when a slot lands inside this window
}

// Profile maps an activity-type tag to its preferred windows and base score.
// Profiles are immutable configuration; they have no lifecycle beyond startup.
type Profile struct {
	Type         string
	BaseScore    int
	Windows      []Window
	OffRationale string // shown when a slot falls outside every window
}

// Result is a scored slot with its human-readable reasoning.
type Result struct {
	Score     int // clamped to 1..10
	Rationale string
}
