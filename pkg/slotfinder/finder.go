package slotfinder

import (
	"fmt"
	"sort"
	"time"
)

// Find walks the gaps between busy ranges and returns open slots of exactly
// req.Duration, earliest start first. A single long gap yields multiple
// consecutive slots. Gaps shorter than the duration are skipped entirely.
// Exhausting the horizon with fewer than MaxResults slots is not an error;
// the caller decides whether to widen the search.
func Find(req Request) ([]Range, error) {
	if req.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %v", req.Duration)
	}
	if !req.SearchStart.Before(req.HorizonEnd) {
		return nil, fmt.Errorf("search start %v is not before horizon end %v", req.SearchStart, req.HorizonEnd)
	}

	busy := mergeBusy(req.Busy, req.SearchStart, req.HorizonEnd)

	var slots []Range
	cursor := req.SearchStart

	emit := func(gapStart, gapEnd time.Time) {
		for s := gapStart; !s.Add(req.Duration).After(gapEnd); s = s.Add(req.Duration) {
			if req.MaxResults > 0 && len(slots) >= req.MaxResults {
				return
			}
			slots = append(slots, Range{Start: s, End: s.Add(req.Duration)})
		}
	}

	for _, b := range busy {
		if cursor.Before(b.Start) {
			emit(cursor, b.Start)
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if req.MaxResults > 0 && len(slots) >= req.MaxResults {
			return slots, nil
		}
	}

	if cursor.Before(req.HorizonEnd) {
		emit(cursor, req.HorizonEnd)
	}

	return slots, nil
}

// mergeBusy clips busy ranges to the search window, drops empty ones, sorts
// by start and coalesces overlapping ranges so the gap walk sees disjoint
// intervals.
func mergeBusy(busy []Range, lo, hi time.Time) []Range {
	clipped := make([]Range, 0, len(busy))
	for _, b := range busy {
		start, end := b.Start, b.End
		if start.Before(lo) {
			start = lo
		}
		if end.After(hi) {
			end = hi
		}
		if start.Before(end) {
			clipped = append(clipped, Range{Start: start, End: end})
		}
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	merged := clipped[:0]
	for _, b := range clipped {
		if n := len(merged); n > 0 && !b.Start.After(merged[n-1].End) {
			if b.End.After(merged[n-1].End) {
				merged[n-1].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}

	return merged
}
