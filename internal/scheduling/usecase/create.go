package usecase

import (
	"context"
	"strings"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
)

// CreateWithConflictCheck creates an event only if the slot is free. When
// existing events overlap, nothing is written: the caller gets a conflict
// report and decides via a resolution directive. ForceCreate skips the check.
func (uc *implUseCase) CreateWithConflictCheck(ctx context.Context, input scheduling.CreateEventInput) (scheduling.CreateEventOutput, error) {
	if err := validateCreateInput(input); err != nil {
		return scheduling.CreateEventOutput{}, err
	}

	if !input.ForceCreate {
		conflicts, err := uc.detectConflicts(ctx, input.Range, "")
		if err != nil {
			return scheduling.CreateEventOutput{}, err
		}
		if len(conflicts) > 0 {
			uc.l.Infof(ctx, "scheduling: create %q blocked by %d conflict(s)", input.Title, len(conflicts))
			return scheduling.CreateEventOutput{
				State:  scheduling.StatePendingResolution,
				Report: &model.ConflictReport{Requested: input.Range, Conflicts: conflicts},
			}, nil
		}
	}

	created, err := uc.createPending(ctx, input)
	if err != nil {
		return scheduling.CreateEventOutput{}, err
	}

	return scheduling.CreateEventOutput{
		State:   scheduling.StateResolved,
		Created: created,
	}, nil
}

// createPending writes the pending request to the backing store.
func (uc *implUseCase) createPending(ctx context.Context, input scheduling.CreateEventInput) (*model.Event, error) {
	created, err := uc.repo.CreateEvent(ctx, repository.CreateEventRequest{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Range:       input.Range,
	})
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: create %q failed: %v", input.Title, err)
		return nil, err
	}

	uc.l.Infof(ctx, "scheduling: created event %s %q", created.ID, created.Title)
	return &created, nil
}

func validateCreateInput(input scheduling.CreateEventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return scheduling.NewValidationError("title", "title is required")
	}
	return validateRange("range", input.Range)
}
