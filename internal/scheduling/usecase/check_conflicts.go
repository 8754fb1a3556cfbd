package usecase

import (
	"context"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
)

// CheckConflicts reports which existing events overlap the candidate range.
func (uc *implUseCase) CheckConflicts(ctx context.Context, input scheduling.CheckConflictsInput) (model.ConflictReport, error) {
	if err := validateRange("range", input.Range); err != nil {
		return model.ConflictReport{}, err
	}

	conflicts, err := uc.detectConflicts(ctx, input.Range, input.ExcludeEventID)
	if err != nil {
		return model.ConflictReport{}, err
	}

	return model.ConflictReport{Requested: input.Range, Conflicts: conflicts}, nil
}

// detectConflicts queries the store for a padded window around the candidate
// range and filters by exact half-open overlap. The padding covers stores
// whose window query is inclusive or coarse; the exact check is ours. Store
// order is preserved. A store failure propagates: it must never be read as
// "no conflicts".
func (uc *implUseCase) detectConflicts(ctx context.Context, rng model.TimeRange, excludeEventID string) ([]model.Event, error) {
	window := model.TimeRange{
		Start: rng.Start.Add(-uc.cfg.QueryPadding),
		End:   rng.End.Add(uc.cfg.QueryPadding),
	}

	events, err := uc.repo.ListEventsInWindow(ctx, window)
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: conflict query failed for %v: %v", rng, err)
		return nil, err
	}

	var conflicts []model.Event
	for _, ev := range events {
		if excludeEventID != "" && ev.ID == excludeEventID {
			continue
		}
		if ev.Range.Overlaps(rng) {
			conflicts = append(conflicts, ev)
		}
	}

	return conflicts, nil
}
