package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lyanh238/VNASelf/internal/model"
	"github.com/lyanh238/VNASelf/internal/scheduling"
	"github.com/lyanh238/VNASelf/internal/scheduling/repository"
	"github.com/lyanh238/VNASelf/pkg/datemath"
	pkgLog "github.com/lyanh238/VNASelf/pkg/log"
	"github.com/lyanh238/VNASelf/pkg/productivity"
)

var ict = time.FixedZone("+07:00", 7*3600)

// Tuesday
var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, ict)

type mockCalendar struct {
	listFn   func(ctx context.Context, window model.TimeRange) ([]model.Event, error)
	createFn func(ctx context.Context, req repository.CreateEventRequest) (model.Event, error)
	moveFn   func(ctx context.Context, eventID string, newRange model.TimeRange) (model.Event, error)
	deleteFn func(ctx context.Context, eventID string) error
	getFn    func(ctx context.Context, eventID string) (model.Event, error)
}

func (m *mockCalendar) ListEventsInWindow(ctx context.Context, window model.TimeRange) ([]model.Event, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, window)
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req repository.CreateEventRequest) (model.Event, error) {
	if m.createFn == nil {
		return model.Event{}, errors.New("unexpected CreateEvent call")
	}
	return m.createFn(ctx, req)
}

func (m *mockCalendar) MoveEvent(ctx context.Context, eventID string, newRange model.TimeRange) (model.Event, error) {
	if m.moveFn == nil {
		return model.Event{}, errors.New("unexpected MoveEvent call")
	}
	return m.moveFn(ctx, eventID, newRange)
}

func (m *mockCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	if m.deleteFn == nil {
		return errors.New("unexpected DeleteEvent call")
	}
	return m.deleteFn(ctx, eventID)
}

func (m *mockCalendar) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	if m.getFn == nil {
		return model.Event{}, errors.New("unexpected GetEvent call")
	}
	return m.getFn(ctx, eventID)
}

func newTestUseCase(repo repository.Calendar) *implUseCase {
	dates, err := datemath.NewParser(ict)
	if err != nil {
		panic(err)
	}

	uc := New(
		pkgLog.NewNoop(),
		repo,
		productivity.NewScorer(productivity.DefaultProfiles()),
		dates,
		Config{
			HorizonDays:     7,
			MaxSuggestions:  5,
			WorkdayStartMin: 8 * 60,
			WorkdayEndMin:   20 * 60,
			QueryPadding:    30 * time.Minute,
			Location:        ict,
		},
	)
	uc.now = func() time.Time { return testNow }
	return uc
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, ict)
}

func rng(day time.Time, h1, m1, h2, m2 int) model.TimeRange {
	return model.TimeRange{Start: at(day, h1, m1), End: at(day, h2, m2)}
}

func recordingCreate(created *[]repository.CreateEventRequest) func(context.Context, repository.CreateEventRequest) (model.Event, error) {
	return func(_ context.Context, req repository.CreateEventRequest) (model.Event, error) {
		*created = append(*created, req)
		return model.Event{
			ID:          fmt.Sprintf("ev-%d", len(*created)),
			Title:       req.Title,
			Range:       req.Range,
			Description: req.Description,
			Location:    req.Location,
		}, nil
	}
}

func TestCheckConflicts(t *testing.T) {
	existing := model.Event{ID: "busy-1", Title: "Standup", Range: rng(testNow, 14, 0, 15, 0)}
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return []model.Event{existing}, nil
		},
	}
	uc := newTestUseCase(repo)

	t.Run("overlapping range is reported", func(t *testing.T) {
		report, err := uc.CheckConflicts(context.Background(), scheduling.CheckConflictsInput{
			Range: rng(testNow, 14, 30, 15, 30),
		})
		if err != nil {
			t.Fatalf("CheckConflicts() error = %v", err)
		}
		if !report.HasConflicts() {
			t.Fatal("expected a conflict, got none")
		}
		if report.Conflicts[0].ID != "busy-1" {
			t.Errorf("conflict ID = %q, want busy-1", report.Conflicts[0].ID)
		}
	})

	t.Run("back to back is not a conflict", func(t *testing.T) {
		report, err := uc.CheckConflicts(context.Background(), scheduling.CheckConflictsInput{
			Range: rng(testNow, 15, 0, 16, 0),
		})
		if err != nil {
			t.Fatalf("CheckConflicts() error = %v", err)
		}
		if report.HasConflicts() {
			t.Errorf("back-to-back range reported as conflict: %+v", report.Conflicts)
		}
	})

	t.Run("excluded event is skipped", func(t *testing.T) {
		report, err := uc.CheckConflicts(context.Background(), scheduling.CheckConflictsInput{
			Range:          rng(testNow, 14, 30, 15, 30),
			ExcludeEventID: "busy-1",
		})
		if err != nil {
			t.Fatalf("CheckConflicts() error = %v", err)
		}
		if report.HasConflicts() {
			t.Errorf("excluded event still reported: %+v", report.Conflicts)
		}
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := uc.CheckConflicts(context.Background(), scheduling.CheckConflictsInput{
			Range: model.TimeRange{Start: at(testNow, 15, 0), End: at(testNow, 14, 0)},
		})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	})
}

func TestCheckConflictsStoreFailurePropagates(t *testing.T) {
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return nil, repository.ErrUnavailable
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.CheckConflicts(context.Background(), scheduling.CheckConflictsInput{
		Range: rng(testNow, 14, 0, 15, 0),
	})
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}

func TestCreateWithConflictCheck(t *testing.T) {
	existing := model.Event{ID: "busy-1", Title: "Standup", Range: rng(testNow, 14, 0, 15, 0)}

	t.Run("conflicting create writes nothing", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.CreateWithConflictCheck(context.Background(), scheduling.CreateEventInput{
			Title: "Design review",
			Range: rng(testNow, 14, 30, 15, 30),
		})
		if err != nil {
			t.Fatalf("CreateWithConflictCheck() error = %v", err)
		}
		if out.State != scheduling.StatePendingResolution {
			t.Errorf("state = %q, want pending_resolution", out.State)
		}
		if out.Report == nil || !out.Report.HasConflicts() {
			t.Fatal("expected a conflict report")
		}
		if out.Created != nil {
			t.Error("created event returned despite conflict")
		}
		if len(created) != 0 {
			t.Errorf("store saw %d create(s), want 0", len(created))
		}
	})

	t.Run("free slot is created", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.CreateWithConflictCheck(context.Background(), scheduling.CreateEventInput{
			Title: "Design review",
			Range: rng(testNow, 16, 0, 17, 0),
		})
		if err != nil {
			t.Fatalf("CreateWithConflictCheck() error = %v", err)
		}
		if out.State != scheduling.StateResolved {
			t.Errorf("state = %q, want resolved", out.State)
		}
		if out.Created == nil || out.Created.ID == "" {
			t.Fatal("expected a created event with store ID")
		}
		if len(created) != 1 {
			t.Fatalf("store saw %d create(s), want 1", len(created))
		}
	})

	t.Run("force create skips the check", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				t.Fatal("conflict check ran despite ForceCreate")
				return nil, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.CreateWithConflictCheck(context.Background(), scheduling.CreateEventInput{
			Title:       "Design review",
			Range:       rng(testNow, 14, 30, 15, 30),
			ForceCreate: true,
		})
		if err != nil {
			t.Fatalf("CreateWithConflictCheck() error = %v", err)
		}
		if out.State != scheduling.StateResolved {
			t.Errorf("state = %q, want resolved", out.State)
		}
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		uc := newTestUseCase(&mockCalendar{})
		_, err := uc.CreateWithConflictCheck(context.Background(), scheduling.CreateEventInput{
			Range: rng(testNow, 16, 0, 17, 0),
		})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
		if vErr.Field != "title" {
			t.Errorf("field = %q, want title", vErr.Field)
		}
	})
}

func TestSuggestAlternativeTimes(t *testing.T) {
	busy := []model.Event{
		{ID: "busy-1", Title: "Standup", Range: rng(testNow, 14, 0, 15, 0)},
	}
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return busy, nil
		},
	}
	uc := newTestUseCase(repo)

	out, err := uc.SuggestAlternativeTimes(context.Background(), scheduling.SuggestAlternativesInput{
		Original:        rng(testNow, 14, 0, 15, 0),
		DurationMinutes: 60,
		MaxResults:      5,
	})
	if err != nil {
		t.Fatalf("SuggestAlternativeTimes() error = %v", err)
	}
	if len(out.Slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(out.Slots))
	}

	// Earliest open workday slot comes first: the day starts at 08:00 and
	// nothing is booked before the 14:00 standup.
	first := out.Slots[0]
	if !first.Start.Equal(at(testNow, 8, 0)) {
		t.Errorf("first slot starts %v, want 08:00", first.Start)
	}

	for i, s := range out.Slots {
		if s.Duration() != time.Hour {
			t.Errorf("slot %d duration = %v, want 1h", i, s.Duration())
		}
		for _, b := range busy {
			if b.Range.Overlaps(s) {
				t.Errorf("slot %d %v overlaps busy %v", i, s, b.Range)
			}
		}
		if i > 0 && !out.Slots[i-1].Start.Before(s.Start) {
			t.Errorf("slots out of order at %d: %v then %v", i, out.Slots[i-1].Start, s.Start)
		}
	}
}

func TestSuggestAlternativeTimesDeterministic(t *testing.T) {
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return []model.Event{
				{ID: "a", Range: rng(testNow, 9, 0, 10, 0)},
				{ID: "b", Range: rng(testNow, 11, 0, 12, 30)},
			}, nil
		},
	}
	uc := newTestUseCase(repo)

	input := scheduling.SuggestAlternativesInput{
		Original:        rng(testNow, 9, 0, 10, 0),
		DurationMinutes: 90,
		MaxResults:      4,
	}
	first, err := uc.SuggestAlternativeTimes(context.Background(), input)
	if err != nil {
		t.Fatalf("SuggestAlternativeTimes() error = %v", err)
	}
	second, err := uc.SuggestAlternativeTimes(context.Background(), input)
	if err != nil {
		t.Fatalf("SuggestAlternativeTimes() error = %v", err)
	}
	if len(first.Slots) != len(second.Slots) {
		t.Fatalf("run lengths differ: %d vs %d", len(first.Slots), len(second.Slots))
	}
	for i := range first.Slots {
		if !first.Slots[i].Start.Equal(second.Slots[i].Start) {
			t.Errorf("slot %d differs between runs: %v vs %v", i, first.Slots[i].Start, second.Slots[i].Start)
		}
	}
}

func TestSuggestOptimalTime(t *testing.T) {
	repo := &mockCalendar{}
	uc := newTestUseCase(repo)

	out, err := uc.SuggestOptimalTime(context.Background(), scheduling.SuggestOptimalInput{
		ActivityType:    productivity.ActivityMeeting,
		DurationMinutes: 60,
		PreferredDate:   "tomorrow",
	})
	if err != nil {
		t.Fatalf("SuggestOptimalTime() error = %v", err)
	}
	if len(out.Candidates) == 0 {
		t.Fatal("expected candidates on an empty calendar")
	}

	// Top candidate for a weekday meeting always lands inside a preferred
	// window, which guarantees at least base + weekday = 7.
	top := out.Candidates[0]
	if top.Score < 7 {
		t.Errorf("top score = %d, want >= 7", top.Score)
	}
	if top.Rationale == "" {
		t.Error("top candidate missing rationale")
	}

	for i := 1; i < len(out.Candidates); i++ {
		prev, cur := out.Candidates[i-1], out.Candidates[i]
		if prev.Score < cur.Score {
			t.Errorf("candidates not score-descending at %d: %d then %d", i, prev.Score, cur.Score)
		}
		if prev.Score == cur.Score && prev.Range.Start.After(cur.Range.Start) {
			t.Errorf("tie at %d not broken by earliest start", i)
		}
	}
}

func TestSuggestOptimalTimeUnknownActivity(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	out, err := uc.SuggestOptimalTime(context.Background(), scheduling.SuggestOptimalInput{
		ActivityType:    "underwater-basket-weaving",
		DurationMinutes: 60,
		PreferredDate:   "tomorrow",
	})
	if err != nil {
		t.Fatalf("SuggestOptimalTime() error = %v", err)
	}
	if len(out.Candidates) == 0 {
		t.Fatal("unknown activity should fall back to neutral windows, not fail")
	}
	for _, c := range out.Candidates {
		if c.Score != 5 {
			t.Errorf("unknown activity score = %d, want flat 5", c.Score)
		}
	}
}

func TestSuggestOptimalTimeSkipsBusySlots(t *testing.T) {
	tomorrow := testNow.AddDate(0, 0, 1)
	busy := model.Event{ID: "busy-1", Range: rng(tomorrow, 10, 0, 11, 30)}
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return []model.Event{busy}, nil
		},
	}
	uc := newTestUseCase(repo)

	out, err := uc.SuggestOptimalTime(context.Background(), scheduling.SuggestOptimalInput{
		ActivityType:    productivity.ActivityMeeting,
		DurationMinutes: 60,
		PreferredDate:   "tomorrow",
	})
	if err != nil {
		t.Fatalf("SuggestOptimalTime() error = %v", err)
	}
	for _, c := range out.Candidates {
		if busy.Range.Overlaps(c.Range) {
			t.Errorf("candidate %v overlaps busy %v", c.Range, busy.Range)
		}
	}
}

func TestSuggestOptimalTimeBadPreferredDate(t *testing.T) {
	uc := newTestUseCase(&mockCalendar{})

	_, err := uc.SuggestOptimalTime(context.Background(), scheduling.SuggestOptimalInput{
		ActivityType:    productivity.ActivityMeeting,
		DurationMinutes: 60,
		PreferredDate:   "whenever",
	})
	var vErr *scheduling.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestResolveByRelocatingNew(t *testing.T) {
	existing := model.Event{ID: "busy-1", Title: "Standup", Range: rng(testNow, 14, 0, 15, 0)}
	pending := scheduling.CreateEventInput{
		Title: "Design review",
		Range: rng(testNow, 14, 30, 15, 30),
	}

	t.Run("still conflicting returns a fresh report", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByRelocatingNew(context.Background(), scheduling.RelocateNewInput{
			Pending:  pending,
			NewRange: rng(testNow, 14, 45, 15, 45),
		})
		if err != nil {
			t.Fatalf("ResolveByRelocatingNew() error = %v", err)
		}
		if out.State != scheduling.StatePendingResolution {
			t.Errorf("state = %q, want pending_resolution", out.State)
		}
		if out.Report == nil || !out.Report.Requested.Start.Equal(at(testNow, 14, 45)) {
			t.Error("report should describe the new range, not the original")
		}
		if len(created) != 0 {
			t.Errorf("store saw %d create(s), want 0", len(created))
		}
	})

	t.Run("free new range creates there", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByRelocatingNew(context.Background(), scheduling.RelocateNewInput{
			Pending:  pending,
			NewRange: rng(testNow, 16, 0, 17, 0),
		})
		if err != nil {
			t.Fatalf("ResolveByRelocatingNew() error = %v", err)
		}
		if out.State != scheduling.StateResolved {
			t.Errorf("state = %q, want resolved", out.State)
		}
		if len(created) != 1 || !created[0].Range.Start.Equal(at(testNow, 16, 0)) {
			t.Errorf("create request = %+v, want 16:00 start", created)
		}
	})
}

func TestResolveByRelocatingExisting(t *testing.T) {
	existing := model.Event{ID: "busy-1", Title: "Standup", Range: rng(testNow, 14, 0, 15, 0)}
	pending := scheduling.CreateEventInput{
		Title: "Design review",
		Range: rng(testNow, 14, 0, 15, 0),
	}

	getExisting := func(_ context.Context, eventID string) (model.Event, error) {
		if eventID != existing.ID {
			return model.Event{}, repository.ErrNotFound
		}
		return existing, nil
	}

	t.Run("move then create", func(t *testing.T) {
		var created []repository.CreateEventRequest
		var movedTo model.TimeRange
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			getFn: getExisting,
			moveFn: func(_ context.Context, eventID string, newRange model.TimeRange) (model.Event, error) {
				movedTo = newRange
				ev := existing
				ev.Range = newRange
				return ev, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByRelocatingExisting(context.Background(), scheduling.RelocateExistingInput{
			Pending:  pending,
			EventID:  "busy-1",
			NewRange: rng(testNow, 16, 0, 17, 0),
		})
		if err != nil {
			t.Fatalf("ResolveByRelocatingExisting() error = %v", err)
		}
		if out.State != scheduling.StateResolved {
			t.Errorf("state = %q, want resolved", out.State)
		}
		if out.Moved == nil || !movedTo.Start.Equal(at(testNow, 16, 0)) {
			t.Error("existing event was not moved to the new range")
		}
		if out.Created == nil || len(created) != 1 {
			t.Error("pending event was not created")
		}
		if !created[0].Range.Start.Equal(pending.Range.Start) {
			t.Errorf("pending created at %v, want its original range", created[0].Range.Start)
		}
	})

	t.Run("create failure after move is partial", func(t *testing.T) {
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			getFn: getExisting,
			moveFn: func(_ context.Context, _ string, newRange model.TimeRange) (model.Event, error) {
				ev := existing
				ev.Range = newRange
				return ev, nil
			},
			createFn: func(_ context.Context, _ repository.CreateEventRequest) (model.Event, error) {
				return model.Event{}, repository.ErrUnavailable
			},
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByRelocatingExisting(context.Background(), scheduling.RelocateExistingInput{
			Pending:  pending,
			EventID:  "busy-1",
			NewRange: rng(testNow, 16, 0, 17, 0),
		})
		var pErr *scheduling.PartialResolutionError
		if !errors.As(err, &pErr) {
			t.Fatalf("error = %v, want PartialResolutionError", err)
		}
		if pErr.CompletedStep != "move" {
			t.Errorf("completed step = %q, want move", pErr.CompletedStep)
		}
		if !errors.Is(err, repository.ErrUnavailable) {
			t.Error("underlying store error not in the chain")
		}
		if out.State != scheduling.StateFailed {
			t.Errorf("state = %q, want failed", out.State)
		}
		if out.Moved == nil {
			t.Error("moved event missing from partial result")
		}
	})

	t.Run("new range overlapping pending is rejected", func(t *testing.T) {
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				return []model.Event{existing}, nil
			},
			getFn: getExisting,
		}
		uc := newTestUseCase(repo)

		_, err := uc.ResolveByRelocatingExisting(context.Background(), scheduling.RelocateExistingInput{
			Pending:  pending,
			EventID:  "busy-1",
			NewRange: rng(testNow, 14, 30, 15, 30),
		})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	})

	t.Run("unknown event id is a validation error", func(t *testing.T) {
		repo := &mockCalendar{getFn: getExisting}
		uc := newTestUseCase(repo)

		_, err := uc.ResolveByRelocatingExisting(context.Background(), scheduling.RelocateExistingInput{
			Pending:  pending,
			EventID:  "no-such-event",
			NewRange: rng(testNow, 16, 0, 17, 0),
		})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
		if vErr.Field != "event_id" {
			t.Errorf("field = %q, want event_id", vErr.Field)
		}
	})
}

func TestResolveByDeletingExisting(t *testing.T) {
	pending := scheduling.CreateEventInput{
		Title: "Design review",
		Range: rng(testNow, 14, 0, 15, 0),
	}
	blocking := model.Event{ID: "busy-1", Title: "Standup", Range: rng(testNow, 14, 0, 15, 0)}
	getBlocking := func(_ context.Context, eventID string) (model.Event, error) {
		if eventID != blocking.ID {
			return model.Event{}, repository.ErrNotFound
		}
		return blocking, nil
	}

	t.Run("delete then create", func(t *testing.T) {
		var created []repository.CreateEventRequest
		var deleted []string
		repo := &mockCalendar{
			getFn: getBlocking,
			deleteFn: func(_ context.Context, eventID string) error {
				deleted = append(deleted, eventID)
				return nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByDeletingExisting(context.Background(), scheduling.DeleteExistingInput{
			Pending: pending,
			EventID: "busy-1",
		})
		if err != nil {
			t.Fatalf("ResolveByDeletingExisting() error = %v", err)
		}
		if out.State != scheduling.StateResolved {
			t.Errorf("state = %q, want resolved", out.State)
		}
		if len(deleted) != 1 || deleted[0] != "busy-1" {
			t.Errorf("deleted = %v, want [busy-1]", deleted)
		}
		if out.Created == nil || len(created) != 1 {
			t.Error("pending event was not created")
		}
	})

	t.Run("create failure after delete is partial", func(t *testing.T) {
		repo := &mockCalendar{
			getFn:    getBlocking,
			deleteFn: func(_ context.Context, _ string) error { return nil },
			createFn: func(_ context.Context, _ repository.CreateEventRequest) (model.Event, error) {
				return model.Event{}, repository.ErrUnavailable
			},
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByDeletingExisting(context.Background(), scheduling.DeleteExistingInput{
			Pending: pending,
			EventID: "busy-1",
		})
		var pErr *scheduling.PartialResolutionError
		if !errors.As(err, &pErr) {
			t.Fatalf("error = %v, want PartialResolutionError", err)
		}
		if pErr.CompletedStep != "delete" {
			t.Errorf("completed step = %q, want delete", pErr.CompletedStep)
		}
		if out.State != scheduling.StateFailed {
			t.Errorf("state = %q, want failed", out.State)
		}
		if out.DeletedEventID != "busy-1" {
			t.Errorf("deleted event ID = %q, want busy-1", out.DeletedEventID)
		}
	})

	t.Run("delete failure writes nothing", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			getFn:    getBlocking,
			deleteFn: func(_ context.Context, _ string) error { return repository.ErrNotFound },
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.ResolveByDeletingExisting(context.Background(), scheduling.DeleteExistingInput{
			Pending: pending,
			EventID: "busy-1",
		})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
		if out.State != scheduling.StateFailed {
			t.Errorf("state = %q, want failed", out.State)
		}
		if len(created) != 0 {
			t.Errorf("store saw %d create(s) after failed delete, want 0", len(created))
		}
	})

	t.Run("unknown event id is a validation error", func(t *testing.T) {
		var deleted []string
		repo := &mockCalendar{
			getFn: getBlocking,
			deleteFn: func(_ context.Context, eventID string) error {
				deleted = append(deleted, eventID)
				return nil
			},
		}
		uc := newTestUseCase(repo)

		_, err := uc.ResolveByDeletingExisting(context.Background(), scheduling.DeleteExistingInput{
			Pending: pending,
			EventID: "no-such-event",
		})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
		if vErr.Field != "event_id" {
			t.Errorf("field = %q, want event_id", vErr.Field)
		}
		if len(deleted) != 0 {
			t.Errorf("store saw %d delete(s) for an unknown event, want 0", len(deleted))
		}
	})
}

func TestResolveDispatch(t *testing.T) {
	pending := scheduling.CreateEventInput{
		Title: "Design review",
		Range: rng(testNow, 14, 0, 15, 0),
	}

	t.Run("create anyway skips the check", func(t *testing.T) {
		var created []repository.CreateEventRequest
		repo := &mockCalendar{
			listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
				t.Fatal("conflict check ran for create_anyway")
				return nil, nil
			},
			createFn: recordingCreate(&created),
		}
		uc := newTestUseCase(repo)

		out, err := uc.Resolve(context.Background(), pending, scheduling.ResolutionDirective{
			Kind: scheduling.DirectiveCreateAnyway,
		})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if out.State != scheduling.StateResolved || len(created) != 1 {
			t.Errorf("state = %q, creates = %d; want resolved with 1 create", out.State, len(created))
		}
	})

	t.Run("relocate directives require a range", func(t *testing.T) {
		uc := newTestUseCase(&mockCalendar{})
		for _, kind := range []scheduling.DirectiveKind{scheduling.DirectiveRelocateNew, scheduling.DirectiveRelocateExisting} {
			_, err := uc.Resolve(context.Background(), pending, scheduling.ResolutionDirective{Kind: kind, EventID: "busy-1"})
			var vErr *scheduling.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("%s without range: error = %v, want ValidationError", kind, err)
			}
		}
	})

	t.Run("unknown directive is rejected", func(t *testing.T) {
		uc := newTestUseCase(&mockCalendar{})
		_, err := uc.Resolve(context.Background(), pending, scheduling.ResolutionDirective{Kind: "shrug"})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	})
}

func TestListEventsForDate(t *testing.T) {
	events := []model.Event{
		{ID: "a", Title: "Standup", Range: rng(testNow, 9, 0, 9, 30)},
		{ID: "b", Title: "Lunch", Range: rng(testNow, 12, 0, 13, 0)},
	}
	var queried model.TimeRange
	repo := &mockCalendar{
		listFn: func(_ context.Context, window model.TimeRange) ([]model.Event, error) {
			queried = window
			return events, nil
		},
	}
	uc := newTestUseCase(repo)

	out, err := uc.ListEventsForDate(context.Background(), scheduling.ListEventsInput{Date: "2026-09-01"})
	if err != nil {
		t.Fatalf("ListEventsForDate() error = %v", err)
	}
	if out.Date != "2026-09-01" {
		t.Errorf("date = %q, want 2026-09-01", out.Date)
	}
	if len(out.Events) != 2 || out.Events[0].ID != "a" {
		t.Errorf("events = %+v, store order not preserved", out.Events)
	}
	if !queried.Start.Equal(at(testNow, 0, 0)) || !queried.End.Equal(at(testNow.AddDate(0, 0, 1), 0, 0)) {
		t.Errorf("queried window = %v, want the full day", queried)
	}

	_, err = uc.ListEventsForDate(context.Background(), scheduling.ListEventsInput{Date: "someday"})
	var vErr *scheduling.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestListEventsForDateTextFilter(t *testing.T) {
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return []model.Event{
				{ID: "a", Title: "Standup", Range: rng(testNow, 9, 0, 9, 30)},
				{ID: "b", Title: "Lunch", Description: "Team standup retro over lunch", Range: rng(testNow, 12, 0, 13, 0)},
				{ID: "c", Title: "Design review", Range: rng(testNow, 15, 0, 16, 0)},
			}, nil
		},
	}
	uc := newTestUseCase(repo)

	out, err := uc.ListEventsForDate(context.Background(), scheduling.ListEventsInput{
		Date:  "2026-09-01",
		Query: "STANDUP",
	})
	if err != nil {
		t.Fatalf("ListEventsForDate() error = %v", err)
	}
	if len(out.Events) != 2 {
		t.Fatalf("got %d events, want title and description matches", len(out.Events))
	}
	if out.Events[0].ID != "a" || out.Events[1].ID != "b" {
		t.Errorf("events = %+v, want [a b] in store order", out.Events)
	}
}

func TestAvailability(t *testing.T) {
	repo := &mockCalendar{
		listFn: func(_ context.Context, _ model.TimeRange) ([]model.Event, error) {
			return []model.Event{
				{ID: "a", Title: "Standup", Range: rng(testNow, 10, 0, 11, 0)},
			}, nil
		},
	}
	uc := newTestUseCase(repo)

	out, err := uc.Availability(context.Background(), scheduling.AvailabilityInput{
		Date:       "2026-09-01",
		StartClock: "09:00",
		EndClock:   "17:00",
	})
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}
	if len(out.Busy) != 1 || out.Busy[0].Title != "Standup" {
		t.Fatalf("busy = %+v, want the standup", out.Busy)
	}
	if len(out.Free) != 2 {
		t.Fatalf("free = %+v, want two gaps", out.Free)
	}
	if !out.Free[0].Start.Equal(at(testNow, 9, 0)) || !out.Free[0].End.Equal(at(testNow, 10, 0)) {
		t.Errorf("first gap = %v, want 09:00-10:00", out.Free[0])
	}
	if !out.Free[1].Start.Equal(at(testNow, 11, 0)) || !out.Free[1].End.Equal(at(testNow, 17, 0)) {
		t.Errorf("second gap = %v, want 11:00-17:00", out.Free[1])
	}

	t.Run("clock defaults span the day", func(t *testing.T) {
		emptyRepo := &mockCalendar{}
		uc := newTestUseCase(emptyRepo)
		out, err := uc.Availability(context.Background(), scheduling.AvailabilityInput{Date: "2026-09-01"})
		if err != nil {
			t.Fatalf("Availability() error = %v", err)
		}
		if len(out.Free) != 1 {
			t.Fatalf("free = %+v, want one full-day gap", out.Free)
		}
		if !out.Free[0].End.Equal(at(testNow.AddDate(0, 0, 1), 0, 0)) {
			t.Errorf("gap end = %v, want next midnight", out.Free[0].End)
		}
	})

	t.Run("inverted clocks are rejected", func(t *testing.T) {
		uc := newTestUseCase(&mockCalendar{})
		_, err := uc.Availability(context.Background(), scheduling.AvailabilityInput{
			Date:       "2026-09-01",
			StartClock: "17:00",
			EndClock:   "09:00",
		})
		var vErr *scheduling.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("error = %v, want ValidationError", err)
		}
	})
}
