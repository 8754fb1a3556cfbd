package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/pkg/slotfinder"
)

// candidateStep is the spacing between candidate starts inside a preferred
// window during the optimal-time search.
const candidateStep = 30 * time.Minute

// SuggestAlternativeTimes finds open slots of the requested duration near the
// original range, earliest first. The search walks workday windows day by day
// from the original day forward, never proposing slots in the past.
func (uc *implUseCase) SuggestAlternativeTimes(ctx context.Context, input scheduling.SuggestAlternativesInput) (scheduling.SuggestAlternativesOutput, error) {
	if err := validateRange("original", input.Original); err != nil {
		return scheduling.SuggestAlternativesOutput{}, err
	}
	duration := time.Duration(input.DurationMinutes) * time.Minute
	if input.DurationMinutes <= 0 {
		duration = input.Original.Duration()
	}
	horizonDays := input.HorizonDays
	if horizonDays <= 0 {
		horizonDays = uc.cfg.HorizonDays
	}
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = uc.cfg.MaxSuggestions
	}

	now := uc.now()
	firstDay := uc.startOfDay(maxTime(input.Original.Start, now))
	horizon := model.TimeRange{
		Start: firstDay,
		End:   firstDay.AddDate(0, 0, horizonDays),
	}

	events, err := uc.repo.ListEventsInWindow(ctx, horizon)
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: busy fetch failed for alternatives search: %v", err)
		return scheduling.SuggestAlternativesOutput{}, err
	}
	busy := toBusy(events)

	var slots []model.TimeRange
	for day := firstDay; day.Before(horizon.End) && len(slots) < maxResults; day = day.AddDate(0, 0, 1) {
		start := maxTime(day.Add(time.Duration(uc.cfg.WorkdayStartMin)*time.Minute), now)
		end := day.Add(time.Duration(uc.cfg.WorkdayEndMin) * time.Minute)
		if !start.Before(end) {
			continue
		}

		found, err := slotfinder.Find(slotfinder.Request{
			Duration:    duration,
			Busy:        busy,
			SearchStart: start,
			HorizonEnd:  end,
			MaxResults:  maxResults - len(slots),
		})
		if err != nil {
			return scheduling.SuggestAlternativesOutput{}, err
		}
		for _, s := range found {
			slots = append(slots, model.TimeRange{Start: s.Start, End: s.End})
		}
	}

	return scheduling.SuggestAlternativesOutput{
		Slots:           slots,
		DurationMinutes: int(duration / time.Minute),
		HorizonDays:     horizonDays,
	}, nil
}

// SuggestOptimalTime ranks open slots by productivity score for the activity
// type. Candidates are generated only inside the activity's preferred
// windows; ranking is score descending, ties broken by earliest start.
func (uc *implUseCase) SuggestOptimalTime(ctx context.Context, input scheduling.SuggestOptimalInput) (scheduling.SuggestOptimalOutput, error) {
	if input.DurationMinutes <= 0 {
		return scheduling.SuggestOptimalOutput{}, scheduling.NewValidationError("duration_minutes", "must be positive")
	}
	duration := time.Duration(input.DurationMinutes) * time.Minute

	horizonDays := input.HorizonDays
	if horizonDays <= 0 {
		horizonDays = uc.cfg.HorizonDays
	}
	maxSuggestions := input.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = uc.cfg.MaxSuggestions
	}

	now := uc.now()
	firstDay := uc.startOfDay(now)
	lastDay := firstDay.AddDate(0, 0, horizonDays)

	if input.PreferredDate != "" {
		day, err := uc.dates.Parse(input.PreferredDate, now)
		if err != nil {
			return scheduling.SuggestOptimalOutput{}, scheduling.NewValidationError("preferred_date", err.Error())
		}
		firstDay = day
		lastDay = uc.dates.EndOfDay(day)
		horizonDays = 1
	}

	events, err := uc.repo.ListEventsInWindow(ctx, model.TimeRange{Start: firstDay, End: lastDay})
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: busy fetch failed for optimal search: %v", err)
		return scheduling.SuggestOptimalOutput{}, err
	}

	windows := uc.scorer.Windows(input.ActivityType)

	var candidates []model.SlotCandidate
	for day := firstDay; day.Before(lastDay); day = day.AddDate(0, 0, 1) {
		for _, w := range windows {
			winStart := day.Add(time.Duration(w.StartMinute) * time.Minute)
			winEnd := day.Add(time.Duration(w.EndMinute) * time.Minute)

			for start := winStart; !start.Add(duration).After(winEnd); start = start.Add(candidateStep) {
				if start.Before(now) {
					continue
				}
				slot := model.TimeRange{Start: start, End: start.Add(duration)}
				if overlapsAny(slot, events) {
					continue
				}
				res := uc.scorer.Score(start, input.ActivityType)
				candidates = append(candidates, model.SlotCandidate{
					Range:     slot,
					Score:     res.Score,
					Rationale: res.Rationale,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Range.Start.Before(candidates[j].Range.Start)
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	return scheduling.SuggestOptimalOutput{
		Candidates:      candidates,
		DurationMinutes: input.DurationMinutes,
		HorizonDays:     horizonDays,
	}, nil
}

func overlapsAny(slot model.TimeRange, events []model.Event) bool {
	for _, ev := range events {
		if ev.Range.Overlaps(slot) {
			return true
		}
	}
	return false
}
