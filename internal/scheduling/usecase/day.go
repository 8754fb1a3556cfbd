package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
)

// ListEventsForDate returns the named day's events in store order. A query
// narrows the list to events whose title or description contains the text.
func (uc *implUseCase) ListEventsForDate(ctx context.Context, input scheduling.ListEventsInput) (scheduling.ListEventsOutput, error) {
	day, err := uc.dates.Parse(input.Date, uc.now())
	if err != nil {
		return scheduling.ListEventsOutput{}, scheduling.NewValidationError("date", err.Error())
	}

	events, err := uc.repo.ListEventsInWindow(ctx, model.TimeRange{
		Start: day,
		End:   uc.dates.EndOfDay(day),
	})
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: list events for %s failed: %v", input.Date, err)
		return scheduling.ListEventsOutput{}, err
	}

	if q := strings.TrimSpace(input.Query); q != "" {
		events = filterEventsByText(events, q)
	}

	return scheduling.ListEventsOutput{
		Date:   day.Format("2006-01-02"),
		Events: events,
	}, nil
}

// filterEventsByText keeps events whose title or description contains the
// query, case-insensitively. Order is preserved.
func filterEventsByText(events []model.Event, query string) []model.Event {
	query = strings.ToLower(query)

	matched := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), query) ||
			strings.Contains(strings.ToLower(ev.Description), query) {
			matched = append(matched, ev)
		}
	}
	return matched
}

// Availability reports busy periods and the free gaps between them for part
// of a day.
func (uc *implUseCase) Availability(ctx context.Context, input scheduling.AvailabilityInput) (scheduling.AvailabilityOutput, error) {
	day, err := uc.dates.Parse(input.Date, uc.now())
	if err != nil {
		return scheduling.AvailabilityOutput{}, scheduling.NewValidationError("date", err.Error())
	}

	startMin, err := parseClockMinutes(input.StartClock, 0)
	if err != nil {
		return scheduling.AvailabilityOutput{}, scheduling.NewValidationError("start", err.Error())
	}
	endMin, err := parseClockMinutes(input.EndClock, 24*60)
	if err != nil {
		return scheduling.AvailabilityOutput{}, scheduling.NewValidationError("end", err.Error())
	}
	if endMin <= startMin {
		return scheduling.AvailabilityOutput{}, scheduling.NewValidationError("end", "must be after start")
	}

	window := model.TimeRange{
		Start: day.Add(time.Duration(startMin) * time.Minute),
		End:   day.Add(time.Duration(endMin) * time.Minute),
	}

	events, err := uc.repo.ListEventsInWindow(ctx, window)
	if err != nil {
		uc.l.Errorf(ctx, "scheduling: availability for %s failed: %v", input.Date, err)
		return scheduling.AvailabilityOutput{}, err
	}

	busy := make([]scheduling.BusyPeriod, 0, len(events))
	for _, ev := range events {
		if !ev.Range.Overlaps(window) {
			continue
		}
		busy = append(busy, scheduling.BusyPeriod{Range: ev.Range, Title: ev.Title})
	}

	return scheduling.AvailabilityOutput{
		Date: day.Format("2006-01-02"),
		Busy: busy,
		Free: freeGaps(window, events),
	}, nil
}

// parseClockMinutes parses "HH:MM" to minutes from midnight. "24:00" is
// accepted as the exclusive end of day. Empty input takes the default.
func parseClockMinutes(clock string, def int) (int, error) {
	if clock == "" {
		return def, nil
	}
	if clock == "24:00" {
		return 24 * 60, nil
	}

	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: use HH:MM", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}
