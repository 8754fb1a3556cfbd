package scheduling

import (
	"context"

	"github.com/lyanh238/VNASelf/internal/model"
)

// UseCase is the scheduling engine's contract with its callers (the external
// agent layer). Every operation is synchronous and stateless between calls;
// the only carried identifiers are the ones callers pass back in.
type UseCase interface {
	// Conflict detection
	CheckConflicts(ctx context.Context, input CheckConflictsInput) (model.ConflictReport, error)
	CreateWithConflictCheck(ctx context.Context, input CreateEventInput) (CreateEventOutput, error)

	// Suggestion searches
	SuggestAlternativeTimes(ctx context.Context, input SuggestAlternativesInput) (SuggestAlternativesOutput, error)
	SuggestOptimalTime(ctx context.Context, input SuggestOptimalInput) (SuggestOptimalOutput, error)

	// Conflict resolution (each terminates a pending workflow)
	Resolve(ctx context.Context, pending CreateEventInput, directive ResolutionDirective) (ResolveOutput, error)
	ResolveByRelocatingNew(ctx context.Context, input RelocateNewInput) (ResolveOutput, error)
	ResolveByRelocatingExisting(ctx context.Context, input RelocateExistingInput) (ResolveOutput, error)
	ResolveByDeletingExisting(ctx context.Context, input DeleteExistingInput) (ResolveOutput, error)

	// Day views
	ListEventsForDate(ctx context.Context, input ListEventsInput) (ListEventsOutput, error)
	Availability(ctx context.Context, input AvailabilityInput) (AvailabilityOutput, error)
}
