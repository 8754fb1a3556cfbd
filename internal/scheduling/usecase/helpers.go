package usecase

import (
	"sort"
	"time"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/pkg/slotfinder"
)

// validateRange rejects zero or inverted ranges. Offset-less timestamps are
// already rejected at the parsing boundary (RFC3339 requires an offset);
// this guards the invariant for programmatic callers.
func validateRange(field string, r model.TimeRange) error {
	if r.Start.IsZero() || r.End.IsZero() {
		return scheduling.NewValidationError(field, "start and end are required")
	}
	if !r.Valid() {
		return scheduling.NewValidationError(field, "start must be strictly before end")
	}
	return nil
}

// startOfDay returns midnight of the day containing t, in the deployment location.
func (uc *implUseCase) startOfDay(t time.Time) time.Time {
	t = t.In(uc.cfg.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, uc.cfg.Location)
}

// toBusy converts events to slot-finder busy ranges.
func toBusy(events []model.Event) []slotfinder.Range {
	busy := make([]slotfinder.Range, 0, len(events))
	for _, ev := range events {
		busy = append(busy, slotfinder.Range{Start: ev.Range.Start, End: ev.Range.End})
	}
	return busy
}

// freeGaps returns the maximal free periods within the window around the
// given busy events, earliest first.
func freeGaps(window model.TimeRange, events []model.Event) []model.TimeRange {
	busy := make([]model.TimeRange, 0, len(events))
	for _, ev := range events {
		b := ev.Range
		if b.Start.Before(window.Start) {
			b.Start = window.Start
		}
		if b.End.After(window.End) {
			b.End = window.End
		}
		if b.Valid() {
			busy = append(busy, b)
		}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	var free []model.TimeRange
	cursor := window.Start
	for _, b := range busy {
		if cursor.Before(b.Start) {
			free = append(free, model.TimeRange{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, model.TimeRange{Start: cursor, End: window.End})
	}

	return free
}

// maxTime returns the later of two instants.
func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
