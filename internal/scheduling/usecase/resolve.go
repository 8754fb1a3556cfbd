package usecase

import (
	"context"
	"errors"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
)

// Resolve dispatches a caller directive against its pending create request.
// Each directive terminates the pending workflow; RelocateNew may re-enter
// pending when the new range is also taken.
func (uc *implUseCase) Resolve(ctx context.Context, pending scheduling.CreateEventInput, directive scheduling.ResolutionDirective) (scheduling.ResolveOutput, error) {
	switch directive.Kind {
	case scheduling.DirectiveCreateAnyway:
		return uc.resolveCreateAnyway(ctx, pending)
	case scheduling.DirectiveRelocateNew:
		if directive.NewRange == nil {
			return scheduling.ResolveOutput{}, scheduling.NewValidationError("new_range", "required for relocate_new")
		}
		return uc.ResolveByRelocatingNew(ctx, scheduling.RelocateNewInput{
			Pending:  pending,
			NewRange: *directive.NewRange,
		})
	case scheduling.DirectiveRelocateExisting:
		if directive.NewRange == nil {
			return scheduling.ResolveOutput{}, scheduling.NewValidationError("new_range", "required for relocate_existing")
		}
		return uc.ResolveByRelocatingExisting(ctx, scheduling.RelocateExistingInput{
			Pending:  pending,
			EventID:  directive.EventID,
			NewRange: *directive.NewRange,
		})
	case scheduling.DirectiveDeleteExisting:
		return uc.ResolveByDeletingExisting(ctx, scheduling.DeleteExistingInput{
			Pending: pending,
			EventID: directive.EventID,
		})
	default:
		return scheduling.ResolveOutput{}, scheduling.NewValidationError("kind", "unknown resolution directive")
	}
}

// resolveCreateAnyway creates the pending event without re-checking. The
// caller has seen the conflict report and accepted the double booking.
func (uc *implUseCase) resolveCreateAnyway(ctx context.Context, pending scheduling.CreateEventInput) (scheduling.ResolveOutput, error) {
	if err := validateCreateInput(pending); err != nil {
		return scheduling.ResolveOutput{}, err
	}

	created, err := uc.createPending(ctx, pending)
	if err != nil {
		return scheduling.ResolveOutput{State: scheduling.StateFailed}, err
	}

	return scheduling.ResolveOutput{
		State:   scheduling.StateResolved,
		Created: created,
	}, nil
}

// ResolveByRelocatingNew retries the pending create at a new range. The new
// range gets a fresh conflict check first; if it is also taken the caller
// gets a new report and stays in the pending workflow. Nothing is written
// unless the new range is free.
func (uc *implUseCase) ResolveByRelocatingNew(ctx context.Context, input scheduling.RelocateNewInput) (scheduling.ResolveOutput, error) {
	if err := validateCreateInput(input.Pending); err != nil {
		return scheduling.ResolveOutput{}, err
	}
	if err := validateRange("new_range", input.NewRange); err != nil {
		return scheduling.ResolveOutput{}, err
	}

	conflicts, err := uc.detectConflicts(ctx, input.NewRange, "")
	if err != nil {
		return scheduling.ResolveOutput{State: scheduling.StateFailed}, err
	}
	if len(conflicts) > 0 {
		uc.l.Infof(ctx, "scheduling: relocated range for %q still has %d conflict(s)", input.Pending.Title, len(conflicts))
		return scheduling.ResolveOutput{
			State:  scheduling.StatePendingResolution,
			Report: &model.ConflictReport{Requested: input.NewRange, Conflicts: conflicts},
		}, nil
	}

	pending := input.Pending
	pending.Range = input.NewRange

	created, err := uc.createPending(ctx, pending)
	if err != nil {
		return scheduling.ResolveOutput{State: scheduling.StateFailed}, err
	}

	return scheduling.ResolveOutput{
		State:   scheduling.StateResolved,
		Created: created,
	}, nil
}

// ResolveByRelocatingExisting moves the blocking event to a new range, then
// creates the pending request at its original range. The new range is checked
// first against other events and against the pending range itself, so the
// move cannot manufacture a fresh conflict. If the move lands but the create
// fails, the move is not rolled back; the caller gets a PartialResolutionError
// naming the completed step.
func (uc *implUseCase) ResolveByRelocatingExisting(ctx context.Context, input scheduling.RelocateExistingInput) (scheduling.ResolveOutput, error) {
	if err := validateCreateInput(input.Pending); err != nil {
		return scheduling.ResolveOutput{}, err
	}
	if input.EventID == "" {
		return scheduling.ResolveOutput{}, scheduling.NewValidationError("event_id", "required for relocate_existing")
	}
	if err := validateRange("new_range", input.NewRange); err != nil {
		return scheduling.ResolveOutput{}, err
	}
	if err := uc.requireExistingEvent(ctx, input.EventID); err != nil {
		return scheduling.ResolveOutput{}, err
	}

	conflicts, err := uc.detectConflicts(ctx, input.NewRange, input.EventID)
	if err != nil {
		return scheduling.ResolveOutput{State: scheduling.StateFailed}, err
	}
	if input.NewRange.Overlaps(input.Pending.Range) {
		return scheduling.ResolveOutput{}, scheduling.NewValidationError("new_range", "overlaps the pending event's range")
	}
	if len(conflicts) > 0 {
		uc.l.Infof(ctx, "scheduling: relocation target for event %s has %d conflict(s)", input.EventID, len(conflicts))
		return scheduling.ResolveOutput{
			State:  scheduling.StatePendingResolution,
			Report: &model.ConflictReport{Requested: input.NewRange, Conflicts: conflicts},
		}, nil
	}

	moved, err := uc.repo.MoveEvent(ctx, input.EventID, input.NewRange)
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: move of event %s failed: %v", input.EventID, err)
		return scheduling.ResolveOutput{State: scheduling.StateFailed}, err
	}

	created, err := uc.createPending(ctx, input.Pending)
	if err != nil {
		return scheduling.ResolveOutput{
			State: scheduling.StateFailed,
			Moved: &moved,
		}, &scheduling.PartialResolutionError{CompletedStep: "move", Err: err}
	}

	return scheduling.ResolveOutput{
		State:   scheduling.StateResolved,
		Moved:   &moved,
		Created: created,
	}, nil
}

// requireExistingEvent confirms the directive's event ID names a real event
// before any mutation runs. A caller pointing at a nonexistent event made a
// bad request, not a store fault.
func (uc *implUseCase) requireExistingEvent(ctx context.Context, eventID string) error {
	_, err := uc.repo.GetEvent(ctx, eventID)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return scheduling.NewValidationError("event_id", "no such event in the calendar")
	}
	uc.l.Errorf(ctx, "scheduling: lookup of event %s failed: %v", eventID, err)
	return err
}

// ResolveByDeletingExisting removes the blocking event, then creates the
// pending request at its original range. Like relocation, a create failure
// after a successful delete is surfaced as a PartialResolutionError.
func (uc *implUseCase) ResolveByDeletingExisting(ctx context.Context, input scheduling.DeleteExistingInput) (scheduling.ResolveOutput, error) {
	if err := validateCreateInput(input.Pending); err != nil {
		return scheduling.ResolveOutput{}, err
	}
	if input.EventID == "" {
		return scheduling.ResolveOutput{}, scheduling.NewValidationError("event_id", "required for delete_existing")
	}
	if err := uc.requireExistingEvent(ctx, input.EventID); err != nil {
		return scheduling.ResolveOutput{}, err
	}

	if err := uc.repo.DeleteEvent(ctx, input.EventID); err != nil {
		uc.l.Errorf(ctx, "scheduling: delete of event %s failed: %v", input.EventID, err)
		return scheduling.ResolveOutput{State: scheduling.StateFailed}, err
	}

	created, err := uc.createPending(ctx, input.Pending)
	if err != nil {
		return scheduling.ResolveOutput{
			State:          scheduling.StateFailed,
			DeletedEventID: input.EventID,
		}, &scheduling.PartialResolutionError{CompletedStep: "delete", Err: err}
	}

	return scheduling.ResolveOutput{
		State:          scheduling.StateResolved,
		DeletedEventID: input.EventID,
		Created:        created,
	}, nil
}
